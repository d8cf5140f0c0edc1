package handler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anisrini/literature/internal/config"
	"github.com/anisrini/literature/internal/game"
	"github.com/anisrini/literature/internal/protocol"
	"github.com/anisrini/literature/internal/server/session"
	"github.com/anisrini/literature/internal/server/storage"
	"github.com/anisrini/literature/internal/testutil"
)

type testEnv struct {
	handler  *Handler
	server   *testutil.SimpleServer
	manager  *game.Manager
	sessions *session.Manager
	store    *storage.RedisStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := storage.NewRedisStore(client)
	srv := testutil.NewSimpleServer()
	manager := game.NewManager(&config.Default().Game)
	t.Cleanup(manager.Shutdown)
	sessions := session.NewManager()

	h := NewHandler(HandlerDeps{
		Server:         srv,
		GameManager:    manager,
		SessionManager: sessions,
		Store:          store,
	})

	return &testEnv{handler: h, server: srv, manager: manager, sessions: sessions, store: store}
}

func (env *testEnv) send(c *testutil.SimpleClient, msgType protocol.MessageType, payload any) {
	env.handler.Handle(c, protocol.MustNewMessage(msgType, payload))
}

// createGame 以给定客户端建一局并返回对局号
func (env *testEnv) createGame(t *testing.T, c *testutil.SimpleClient, name string) string {
	t.Helper()

	env.send(c, protocol.MsgCreateGame, protocol.CreateGamePayload{Name: name, PlayerCount: 6})

	msg := c.LastMessage(protocol.MsgGameCreated)
	require.NotNil(t, msg)
	created, err := protocol.ParsePayload[protocol.GameCreatedPayload](msg)
	require.NoError(t, err)
	return created.GameID
}

func lastErrorCode(t *testing.T, c *testutil.SimpleClient) int {
	t.Helper()

	msg := c.LastMessage(protocol.MsgError)
	require.NotNil(t, msg, "期望收到错误消息")
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	return payload.Code
}

func TestHandler_CreateGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	c := &testutil.SimpleClient{ID: "conn0"}

	env.send(c, protocol.MsgCreateGame, protocol.CreateGamePayload{Name: "  Asha  ", PlayerCount: 6})

	msg := c.LastMessage(protocol.MsgGameCreated)
	require.NotNil(t, msg)
	created, err := protocol.ParsePayload[protocol.GameCreatedPayload](msg)
	require.NoError(t, err)

	assert.Len(t, created.GameID, 6)
	assert.Equal(t, 0, created.Player.ID)
	assert.Equal(t, "Asha", created.Player.Name, "昵称应去除首尾空白")
	assert.NotEmpty(t, created.Token)

	binding, ok := env.sessions.Lookup("conn0")
	require.True(t, ok)
	assert.Equal(t, created.GameID, binding.GameID)
	assert.Equal(t, 0, binding.Seat)
	assert.Equal(t, created.GameID, c.GetGame())

	// 对局索引与座位记录异步落库
	require.Eventually(t, func() bool {
		rec, err := env.store.LoadGame(context.Background(), created.GameID)
		return err == nil && rec != nil && rec.Seats == 6
	}, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		rec, err := env.store.LoadSeat(context.Background(), created.GameID, 0)
		return err == nil && rec != nil && rec.Token == created.Token && rec.Online
	}, time.Second, 10*time.Millisecond)
}

func TestHandler_CreateGame_Rejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// 维护模式
	env.server.Maintenance = true
	c := &testutil.SimpleClient{ID: "conn0"}
	env.send(c, protocol.MsgCreateGame, protocol.CreateGamePayload{Name: "Asha"})
	assert.Equal(t, protocol.ErrCodeServerMaintenance, lastErrorCode(t, c))
	env.server.Maintenance = false

	// 缺昵称
	c2 := &testutil.SimpleClient{ID: "conn1"}
	env.send(c2, protocol.MsgCreateGame, protocol.CreateGamePayload{Name: "   "})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastErrorCode(t, c2))

	// 同一连接不能重复入座
	c3 := &testutil.SimpleClient{ID: "conn2"}
	env.createGame(t, c3, "Asha")
	env.send(c3, protocol.MsgCreateGame, protocol.CreateGamePayload{Name: "Asha"})
	assert.Equal(t, protocol.ErrCodeUnknown, lastErrorCode(t, c3))
}

func TestHandler_JoinGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	host := &testutil.SimpleClient{ID: "conn0"}
	gameID := env.createGame(t, host, "Asha")

	joiner := &testutil.SimpleClient{ID: "conn1"}
	env.send(joiner, protocol.MsgJoinGame, protocol.JoinGamePayload{GameID: gameID, Name: "Bram"})

	msg := joiner.LastMessage(protocol.MsgJoinSuccess)
	require.NotNil(t, msg)
	joined, err := protocol.ParsePayload[protocol.JoinSuccessPayload](msg)
	require.NoError(t, err)

	assert.Equal(t, gameID, joined.GameID)
	assert.Equal(t, 1, joined.Player.ID)
	assert.Equal(t, 1, joined.Player.Team)
	require.Len(t, joined.Players, 2)

	// 房主收到入座广播
	assert.NotNil(t, host.LastMessage(protocol.MsgPlayerJoined))
}

func TestHandler_JoinGame_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	c := &testutil.SimpleClient{ID: "conn0"}

	env.send(c, protocol.MsgJoinGame, protocol.JoinGamePayload{GameID: "000000", Name: "Asha"})
	assert.Equal(t, protocol.ErrCodeGameNotFound, lastErrorCode(t, c))
}

func TestHandler_UnknownMessageType(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	c := &testutil.SimpleClient{ID: "conn0"}

	env.handler.Handle(c, &protocol.Message{Type: "juggle_cards"})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastErrorCode(t, c))
}

func TestHandler_ActionsRequireBinding(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	c := &testutil.SimpleClient{ID: "conn0"}

	env.send(c, protocol.MsgRequestCard, protocol.RequestCardPayload{
		GameID: "123456", TargetID: 1, CardRank: "Jack", CardSuit: "Hearts",
	})
	assert.Equal(t, protocol.ErrCodeNotInGame, lastErrorCode(t, c))

	env.send(c, protocol.MsgGetGameState, protocol.GetGameStatePayload{GameID: "123456"})
	assert.Equal(t, protocol.ErrCodeNotInGame, lastErrorCode(t, c))

	env.handler.handleLeaveGame(c)
	assert.Equal(t, protocol.ErrCodeNotInGame, lastErrorCode(t, c))
}

// fillGame 开满 6 人局并返回全部客户端，开局后首轮在 0 号座
func fillGame(t *testing.T, env *testEnv) (string, []*testutil.SimpleClient) {
	t.Helper()

	clients := make([]*testutil.SimpleClient, 6)
	clients[0] = &testutil.SimpleClient{ID: "conn0"}
	gameID := env.createGame(t, clients[0], "P0")

	for i := 1; i < 6; i++ {
		clients[i] = &testutil.SimpleClient{ID: fmt.Sprintf("conn%d", i)}
		env.send(clients[i], protocol.MsgJoinGame, protocol.JoinGamePayload{GameID: gameID, Name: fmt.Sprintf("P%d", i)})
		require.NotNil(t, clients[i].LastMessage(protocol.MsgJoinSuccess))
	}

	for _, c := range clients {
		require.NotNil(t, c.LastMessage(protocol.MsgGameStarted), "满座后自动开局")
	}
	return gameID, clients
}

func TestHandler_GameFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	gameID, clients := fillGame(t, env)

	// 非当前回合的座位不能要牌
	env.send(clients[1], protocol.MsgRequestCard, protocol.RequestCardPayload{
		GameID: gameID, TargetID: 0, CardRank: "Jack", CardSuit: "Hearts",
	})
	assert.Equal(t, protocol.ErrCodeNotYourTurn, lastErrorCode(t, clients[1]))

	// 非法点数直接拒收
	env.send(clients[0], protocol.MsgRequestCard, protocol.RequestCardPayload{
		GameID: gameID, TargetID: 1, CardRank: "8", CardSuit: "Hearts",
	})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastErrorCode(t, clients[0]))

	// 非法半套牌名
	env.send(clients[0], protocol.MsgDeclareSet, protocol.DeclareSetPayload{
		GameID: gameID, SetName: "Middle Hearts",
	})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastErrorCode(t, clients[0]))

	// 快照只暴露自己的手牌
	env.send(clients[2], protocol.MsgGetGameState, protocol.GetGameStatePayload{GameID: gameID})
	msg := clients[2].LastMessage(protocol.MsgGameStateUpdate)
	require.NotNil(t, msg)
	snap, err := protocol.ParsePayload[protocol.GameStateUpdatePayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.MyID)
	assert.Len(t, snap.MyHand, 8)
	require.Len(t, snap.Opponents, 5)
	for _, opp := range snap.Opponents {
		assert.Equal(t, 8, opp.CardsCount)
	}
}

func TestHandler_DeclarePersistsScore(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	gameID, clients := fillGame(t, env)

	// 首回合在 0 号座；Low Hearts 全部归属自己是一个结构合法的声明，
	// 成败取决于实际发牌，但无论成败都产生恰好一分
	assignments := map[string]int{
		"2_Hearts": 0, "3_Hearts": 0, "4_Hearts": 0,
		"5_Hearts": 0, "6_Hearts": 0, "7_Hearts": 0,
	}
	env.send(clients[0], protocol.MsgDeclareSet, protocol.DeclareSetPayload{
		GameID: gameID, SetName: "Low Hearts", CardAssignments: assignments,
	})
	require.NotNil(t, clients[0].LastMessage(protocol.MsgSetDeclarationResult))

	// 落库的对局索引携带两队比分；写入是异步的，重试直到可见
	gs, err := env.manager.GetGame(gameID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		env.handler.persistGame(gs)
		rec, err := env.store.LoadGame(context.Background(), gameID)
		return err == nil && rec != nil && rec.Team1Sets+rec.Team2Sets == 1
	}, time.Second, 20*time.Millisecond)
}

func TestHandler_AddBotAndForceStart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	host := &testutil.SimpleClient{ID: "conn0"}
	gameID := env.createGame(t, host, "Asha")

	env.send(host, protocol.MsgAddBot, protocol.AddBotPayload{GameID: gameID})
	msg := host.LastMessage(protocol.MsgBotAdded)
	require.NotNil(t, msg)
	bot, err := protocol.ParsePayload[protocol.BotAddedPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 1, bot.Player.ID)
	assert.True(t, bot.Player.IsBot)

	// 外人不能给别人的对局强制开局
	stranger := &testutil.SimpleClient{ID: "conn9"}
	env.send(stranger, protocol.MsgForceStartGame, protocol.ForceStartGamePayload{GameID: gameID})
	assert.Equal(t, protocol.ErrCodeNotInGame, lastErrorCode(t, stranger))

	// 房主强制开局，空位由机器人补齐
	env.send(host, protocol.MsgForceStartGame, protocol.ForceStartGamePayload{GameID: gameID})
	require.NotNil(t, host.LastMessage(protocol.MsgGameStarted))

	gs, err2 := env.manager.GetGame(gameID)
	require.NoError(t, err2)
	assert.Equal(t, 6, gs.PlayerCount())
}

func TestHandler_LeaveGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	gameID, clients := fillGame(t, env)

	env.handler.handleLeaveGame(clients[3])

	_, bound := env.sessions.Lookup("conn3")
	assert.False(t, bound)
	assert.Empty(t, clients[3].GetGame())

	// 座位保留在对局中，其他人只会看到掉线通知
	assert.NotNil(t, clients[0].LastMessage(protocol.MsgPlayerOffline))
	gs, err := env.manager.GetGame(gameID)
	require.NoError(t, err)
	assert.Equal(t, 6, gs.PlayerCount())

	// 落库的座位记录标记为离线，令牌保留
	require.Eventually(t, func() bool {
		rec, err := env.store.LoadSeat(context.Background(), gameID, 3)
		return err == nil && rec != nil && !rec.Online && rec.Token != ""
	}, time.Second, 10*time.Millisecond)
}

func TestHandler_Rejoin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	gameID, clients := fillGame(t, env)

	// 拿到 seat 2 的令牌
	msg := clients[2].LastMessage(protocol.MsgJoinSuccess)
	joined, err := protocol.ParsePayload[protocol.JoinSuccessPayload](msg)
	require.NoError(t, err)

	env.handler.handleLeaveGame(clients[2])

	fresh := &testutil.SimpleClient{ID: "conn2-new"}
	env.send(fresh, protocol.MsgRejoinGame, protocol.RejoinGamePayload{
		GameID: gameID, PlayerID: 2, Token: joined.Token,
	})

	rejoinMsg := fresh.LastMessage(protocol.MsgRejoined)
	require.NotNil(t, rejoinMsg)
	rejoined, err := protocol.ParsePayload[protocol.RejoinedPayload](rejoinMsg)
	require.NoError(t, err)
	assert.Equal(t, 2, rejoined.PlayerID)
	require.NotNil(t, rejoined.GameState)
	assert.Len(t, rejoined.GameState.MyHand, 8)

	binding, ok := env.sessions.Lookup("conn2-new")
	require.True(t, ok)
	assert.Equal(t, 2, binding.Seat)
	assert.Equal(t, gameID, fresh.GetGame())

	// 错误令牌被拒
	imposter := &testutil.SimpleClient{ID: "conn-x"}
	env.send(imposter, protocol.MsgRejoinGame, protocol.RejoinGamePayload{
		GameID: gameID, PlayerID: 2, Token: "stolen",
	})
	assert.Equal(t, protocol.ErrCodeInvalidToken, lastErrorCode(t, imposter))
}

func TestHandler_RejoinEvictsStaleConnection(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	gameID, clients := fillGame(t, env)

	msg := clients[4].LastMessage(protocol.MsgJoinSuccess)
	joined, err := protocol.ParsePayload[protocol.JoinSuccessPayload](msg)
	require.NoError(t, err)

	// 旧连接没有断开就从新连接重连同一座位
	env.server.RegisterClient("conn4", clients[4])
	fresh := &testutil.SimpleClient{ID: "conn4-new"}
	env.send(fresh, protocol.MsgRejoinGame, protocol.RejoinGamePayload{
		GameID: gameID, PlayerID: 4, Token: joined.Token,
	})
	require.NotNil(t, fresh.LastMessage(protocol.MsgRejoined))

	// 旧连接的绑定被挤掉，座位只由新连接代表
	_, ok := env.sessions.Lookup("conn4")
	assert.False(t, ok, "旧连接的座位绑定应被移除")
	assert.Empty(t, clients[4].GetGame())

	binding, ok := env.sessions.Lookup("conn4-new")
	require.True(t, ok)
	assert.Equal(t, 4, binding.Seat)

	// 旧连接再提交动作按未入座处理
	env.send(clients[4], protocol.MsgRequestCard, protocol.RequestCardPayload{
		GameID: gameID, TargetID: 1, CardRank: "Jack", CardSuit: "Hearts",
	})
	assert.Equal(t, protocol.ErrCodeNotInGame, lastErrorCode(t, clients[4]))
}
