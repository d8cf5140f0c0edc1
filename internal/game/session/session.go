package session

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/config"
	"github.com/anisrini/literature/internal/game/bot"
	"github.com/anisrini/literature/internal/game/card"
	"github.com/anisrini/literature/internal/logger"
	"github.com/anisrini/literature/internal/protocol"
	"github.com/anisrini/literature/internal/types"
)

// GameState 对局状态
type GameState int

const (
	StateLobby  GameState = iota // 等待玩家入座
	StateActive                  // 回合进行中
	StateOver                    // 全部 8 个半套牌已声明
)

// GamePlayer 对局中的玩家，座位 ID 入座后稳定不变
type GamePlayer struct {
	ID    int // 座位 ID，队伍 = ID % 2
	Name  string
	IsBot bool
	Hand  card.Hand
	Token string // 重连令牌（机器人为空）

	Online bool
	client types.ClientInterface // 机器人或掉线时为 nil
}

// Team 返回玩家所在队伍（0 或 1）
func (p *GamePlayer) Team() int {
	return p.ID % 2
}

// GameSession 单局游戏的唯一事实来源
// 所有状态只在会话自己的 goroutine 上读写，详见 dispatch
type GameSession struct {
	ID    string
	Seats int // 目标座位数（6 或 8）

	cfg      *config.GameConfig
	state    GameState
	players  []*GamePlayer
	hostSeat int // 创建者座位，拥有强制开局权

	currentTurn int
	claimedSets map[card.SetKey]int // 半套牌 -> 得分队伍，写入后不再变更
	teamSets    [2]int
	gameLog     []protocol.GameLogEntry

	rng      *rand.Rand
	strategy bot.Strategy

	commands chan func()
	done     chan struct{}
	pending  atomic.Bool // 至多一个在途动作

	botTimer      *time.Timer
	promoteTimers map[int]*time.Timer

	createdAt time.Time
}

// transmittedLogTail 快照中传输的日志尾部上限；已声明半套牌的台账不受此限制
const transmittedLogTail = 50

// NewGameSession 创建对局并启动其串行执行协程
func NewGameSession(id string, seats int, cfg *config.GameConfig, seed uint64) *GameSession {
	rng := rand.New(rand.NewPCG(seed, seed))
	gs := &GameSession{
		ID:            id,
		Seats:         seats,
		cfg:           cfg,
		state:         StateLobby,
		claimedSets:   make(map[card.SetKey]int, 8),
		rng:           rng,
		strategy:      bot.NewRandomStrategy(rng),
		commands:      make(chan func(), 64),
		done:          make(chan struct{}),
		promoteTimers: make(map[int]*time.Timer),
		createdAt:     time.Now(),
	}
	go gs.run()
	return gs
}

// run 串行执行所有对局操作，一局一个 goroutine
// 内部不变量被破坏时只终止本对局，不影响进程
func (gs *GameSession) run() {
	for {
		select {
		case fn := <-gs.commands:
			gs.safeExec(fn)
		case <-gs.done:
			return
		}
	}
}

func (gs *GameSession) safeExec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			log.Printf("💥 对局 %s 内部状态异常，终止该对局: %v", gs.ID, r)
			gs.state = StateOver
			gs.broadcast(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "game terminated due to an internal error"))
			gs.Terminate()
		}
	}()
	fn()
}

// dispatch 把操作投递到会话协程并等待结果
func (gs *GameSession) dispatch(fn func() error) error {
	res := make(chan error, 1)
	select {
	case gs.commands <- func() { res <- fn() }:
	case <-gs.done:
		return apperrors.ErrGameOver
	}
	select {
	case err := <-res:
		return err
	case <-gs.done:
		return apperrors.ErrGameOver
	}
}

// dispatchAction 回合动作入口：已有未决动作时直接拒绝而非排队
func (gs *GameSession) dispatchAction(fn func() error) error {
	if !gs.pending.CompareAndSwap(false, true) {
		return apperrors.ErrActionInProgress
	}
	defer gs.pending.Store(false)
	return gs.dispatch(fn)
}

// Terminate 停止会话协程；只由管理器清理或内部异常调用
func (gs *GameSession) Terminate() {
	select {
	case <-gs.done:
	default:
		close(gs.done)
	}
}

// State 返回当前对局状态
func (gs *GameSession) State() GameState {
	var st GameState
	_ = gs.dispatch(func() error {
		st = gs.state
		return nil
	})
	return st
}

// Players 返回所有已入座玩家的公开信息（按座位顺序）
func (gs *GameSession) Players() []protocol.PlayerInfo {
	var infos []protocol.PlayerInfo
	_ = gs.dispatch(func() error {
		infos = gs.playerInfos()
		return nil
	})
	return infos
}

// PlayerCount 返回已入座人数
func (gs *GameSession) PlayerCount() int {
	var n int
	_ = gs.dispatch(func() error {
		n = len(gs.players)
		return nil
	})
	return n
}

// Score 返回两队已声明的半套牌数
func (gs *GameSession) Score() [2]int {
	var sets [2]int
	_ = gs.dispatch(func() error {
		sets = gs.teamSets
		return nil
	})
	return sets
}

// IsActive 对局是否仍在进行（优雅关闭时用于排水）
func (gs *GameSession) IsActive() bool {
	return gs.State() == StateActive
}

// CreatedAt 返回创建时间（空闲对局回收用）
func (gs *GameSession) CreatedAt() time.Time {
	return gs.createdAt
}

// --- 入座 ---

// AddHuman 人类玩家入座，返回玩家信息与重连令牌
func (gs *GameSession) AddHuman(name string, client types.ClientInterface) (protocol.PlayerInfo, string, error) {
	var info protocol.PlayerInfo
	var token string
	err := gs.dispatch(func() error {
		if gs.state != StateLobby {
			return apperrors.ErrGameStarted
		}
		if len(gs.players) >= gs.Seats {
			return apperrors.ErrGameFull
		}

		p := &GamePlayer{
			ID:     len(gs.players),
			Name:   name,
			Token:  uuid.New().String(),
			Online: true,
			client: client,
		}
		gs.players = append(gs.players, p)
		token = p.Token
		info = gs.playerInfo(p)

		gs.broadcastExcept(p.ID, protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
			Player: info,
		}))
		log.Printf("👤 玩家 %s 入座对局 %s（座位 %d）", name, gs.ID, p.ID)

		if len(gs.players) == gs.Seats {
			gs.start()
		}
		return nil
	})
	return info, token, err
}

// AddBot 添加一个机器人座位
func (gs *GameSession) AddBot() (protocol.PlayerInfo, error) {
	var info protocol.PlayerInfo
	err := gs.dispatch(func() error {
		if gs.state != StateLobby {
			return apperrors.ErrGameStarted
		}
		if len(gs.players) >= gs.Seats {
			return apperrors.ErrGameFull
		}

		p := &GamePlayer{
			ID:     len(gs.players),
			Name:   fmt.Sprintf("Bot %d", len(gs.players)+1),
			IsBot:  true,
			Online: true,
		}
		gs.players = append(gs.players, p)
		info = gs.playerInfo(p)

		gs.broadcast(protocol.MustNewMessage(protocol.MsgBotAdded, protocol.BotAddedPayload{
			Player: info,
		}))
		log.Printf("🤖 机器人 %s 入座对局 %s（座位 %d）", p.Name, gs.ID, p.ID)

		if len(gs.players) == gs.Seats {
			gs.start()
		}
		return nil
	})
	return info, err
}

// ForceStart 房主提前开局，空位由机器人补齐
func (gs *GameSession) ForceStart(bySeat int) error {
	return gs.dispatch(func() error {
		if gs.state != StateLobby {
			return apperrors.ErrGameStarted
		}
		if bySeat != gs.hostSeat {
			return apperrors.ErrNotYourTurn
		}
		if len(gs.players) < 2 {
			return apperrors.ErrNotEnough
		}

		for len(gs.players) < gs.Seats {
			p := &GamePlayer{
				ID:     len(gs.players),
				Name:   fmt.Sprintf("Bot %d", len(gs.players)+1),
				IsBot:  true,
				Online: true,
			}
			gs.players = append(gs.players, p)
			gs.broadcast(protocol.MustNewMessage(protocol.MsgBotAdded, protocol.BotAddedPayload{
				Player: gs.playerInfo(p),
			}))
		}

		gs.start()
		return nil
	})
}

// --- 开局 ---

// start 发牌并进入回合阶段；只在会话协程上调用
func (gs *GameSession) start() {
	deck := card.NewDeck()
	deck.Shuffle(gs.rng)

	// 轮流发牌直到发完，手牌数量差不超过 1
	for i, c := range deck {
		p := gs.players[i%len(gs.players)]
		p.Hand.Add(c)
	}

	gs.state = StateActive
	// 首个回合分配给最小座位 ID，写入开局日志保证可复盘
	gs.currentTurn = 0

	gs.appendLog(protocol.GameLogEntry{
		Action:      protocol.LogGameStart,
		Turn:        gs.currentTurn,
		PlayerCount: len(gs.players),
		FirstPlayer: gs.currentTurn,
	})

	players := gs.playerInfos()
	gs.broadcast(protocol.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		GameID:      gs.ID,
		Players:     players,
		FirstPlayer: gs.currentTurn,
	}))
	gs.broadcastSnapshots()

	log.Printf("🎮 对局 %s 开始，%d 名玩家，首回合座位 %d", gs.ID, len(gs.players), gs.currentTurn)

	gs.checkInvariant()
	gs.scheduleBotIfNeeded()
}

// --- 会话协程内的辅助方法 ---

func (gs *GameSession) playerBySeat(seat int) *GamePlayer {
	if seat < 0 || seat >= len(gs.players) {
		return nil
	}
	return gs.players[seat]
}

func (gs *GameSession) playerInfo(p *GamePlayer) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:         p.ID,
		Name:       p.Name,
		Team:       p.Team(),
		IsBot:      p.IsBot,
		CardsCount: len(p.Hand),
		Online:     p.Online,
	}
}

func (gs *GameSession) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(gs.players))
	for i, p := range gs.players {
		infos[i] = gs.playerInfo(p)
	}
	return infos
}

func (gs *GameSession) appendLog(entry protocol.GameLogEntry) {
	gs.gameLog = append(gs.gameLog, entry)
}

// advanceTurnFrom 从 seat 的下一个座位起，跳过空手牌座位后落定回合
func (gs *GameSession) advanceTurnFrom(seat int) {
	n := len(gs.players)
	for i := 1; i <= n; i++ {
		next := (seat + i) % n
		if len(gs.players[next].Hand) > 0 {
			gs.setTurn(next)
			return
		}
	}
}

// setTurn 设置回合指针并广播；空手牌座位会被跳过
func (gs *GameSession) setTurn(seat int) {
	p := gs.playerBySeat(seat)
	if p != nil && len(p.Hand) == 0 && gs.state == StateActive {
		gs.advanceTurnFrom(seat)
		return
	}

	gs.currentTurn = seat
	if p != nil {
		gs.broadcast(protocol.MustNewMessage(protocol.MsgTurnChange, protocol.TurnChangePayload{
			PlayerID:   p.ID,
			PlayerName: p.Name,
		}))
	}
	gs.scheduleBotIfNeeded()
}

// checkInvariant 牌数守恒：所有手牌 + 已声明半套牌 = 48
func (gs *GameSession) checkInvariant() {
	total := 6 * len(gs.claimedSets)
	for _, p := range gs.players {
		total += len(p.Hand)
	}
	if total != 48 {
		panic(fmt.Sprintf("card conservation violated: %d cards accounted for in game %s", total, gs.ID))
	}
}

// --- 广播 ---

func (gs *GameSession) broadcast(msg *protocol.Message) {
	for _, p := range gs.players {
		if p.client != nil {
			p.client.SendMessage(msg)
		}
	}
}

func (gs *GameSession) broadcastExcept(seat int, msg *protocol.Message) {
	for _, p := range gs.players {
		if p.ID != seat && p.client != nil {
			p.client.SendMessage(msg)
		}
	}
}

func (gs *GameSession) sendTo(seat int, msg *protocol.Message) {
	if p := gs.playerBySeat(seat); p != nil && p.client != nil {
		p.client.SendMessage(msg)
	}
}

// broadcastSnapshots 给每个在线玩家推送各自视角的全量快照
func (gs *GameSession) broadcastSnapshots() {
	for _, p := range gs.players {
		if p.client == nil {
			continue
		}
		p.client.SendMessage(protocol.MustNewMessage(protocol.MsgGameStateUpdate, gs.buildSnapshot(p.ID)))
	}
}
