package client

import (
	"time"

	"github.com/anisrini/literature/internal/protocol"
)

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}

// CreateGame 创建对局
func (c *Client) CreateGame(name string, playerCount int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCreateGame, protocol.CreateGamePayload{
		Name:        name,
		PlayerCount: playerCount,
	}))
}

// JoinGame 加入对局
func (c *Client) JoinGame(gameID, name string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinGame, protocol.JoinGamePayload{
		GameID: gameID,
		Name:   name,
	}))
}

// LeaveGame 离开对局
func (c *Client) LeaveGame() error {
	err := c.SendMessage(protocol.MustNewMessage(protocol.MsgLeaveGame, nil))
	c.ClearSeat()
	return err
}

// AddBot 为当前对局添加机器人
func (c *Client) AddBot() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgAddBot, protocol.AddBotPayload{
		GameID: c.GameID,
	}))
}

// ForceStart 提前开局，空位由机器人补齐
func (c *Client) ForceStart() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgForceStartGame, protocol.ForceStartGamePayload{
		GameID: c.GameID,
	}))
}

// RequestCard 向对方队伍的玩家要一张牌
func (c *Client) RequestCard(targetSeat int, rank, suit string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgRequestCard, protocol.RequestCardPayload{
		GameID:   c.GameID,
		PlayerID: c.Seat,
		TargetID: targetSeat,
		CardRank: rank,
		CardSuit: suit,
	}))
}

// DeclareSet 声明半套牌的完整分布
// assignments 的键为 "rank_suit"，值为持牌座位
func (c *Client) DeclareSet(setName string, assignments map[string]int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgDeclareSet, protocol.DeclareSetPayload{
		GameID:          c.GameID,
		PlayerID:        c.Seat,
		SetName:         setName,
		CardAssignments: assignments,
	}))
}

// GetGameState 拉取全量快照
func (c *Client) GetGameState() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetGameState, protocol.GetGameStatePayload{
		GameID: c.GameID,
	}))
}

// RejoinGame 使用座位凭据重连
func (c *Client) RejoinGame() error {
	c.mu.RLock()
	gameID, seat, token := c.GameID, c.Seat, c.Token
	seated := c.seated
	c.mu.RUnlock()

	if !seated {
		return errNoSeat
	}
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgRejoinGame, protocol.RejoinGamePayload{
		GameID:   gameID,
		PlayerID: seat,
		Token:    token,
	}))
}
