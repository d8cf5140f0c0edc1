package session

import (
	"log"
	"time"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/protocol"
	"github.com/anisrini/literature/internal/types"
)

// Rejoin 断线重连：校验令牌、重新挂接连接并返回全量快照
// 幂等：除了刷新挂接的连接外不改动任何对局状态，绝不重新发牌
func (gs *GameSession) Rejoin(seat int, token string, client types.ClientInterface) (*protocol.RejoinedPayload, error) {
	var payload *protocol.RejoinedPayload
	err := gs.dispatch(func() error {
		p := gs.playerBySeat(seat)
		if p == nil {
			return apperrors.ErrPlayerNotFound
		}
		if p.IsBot || p.Token == "" || p.Token != token {
			return apperrors.ErrInvalidToken
		}

		wasOffline := !p.Online
		p.client = client
		p.Online = true

		// 取消掉线接管
		if t, ok := gs.promoteTimers[seat]; ok {
			t.Stop()
			delete(gs.promoteTimers, seat)
		}

		if wasOffline {
			gs.broadcastExcept(seat, protocol.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
				PlayerID:   p.ID,
				PlayerName: p.Name,
			}))
			log.Printf("🔄 玩家 %s 重连对局 %s（座位 %d）", p.Name, gs.ID, seat)
		}

		payload = &protocol.RejoinedPayload{
			GameID:   gs.ID,
			PlayerID: seat,
		}
		if gs.state != StateLobby {
			payload.GameState = gs.buildSnapshot(seat)
		}
		return nil
	})
	return payload, err
}

// HandleDisconnect 连接断开：座位保留，牌不动，回合不跳过
// 配置了接管超时的话，到期后座位交给机器人继续
func (gs *GameSession) HandleDisconnect(connID string) {
	_ = gs.dispatch(func() error {
		for _, p := range gs.players {
			if p.client == nil || p.client.GetID() != connID {
				continue
			}
			p.client = nil
			p.Online = false

			timeout := 0
			if gs.cfg.OfflinePromoteTimeout > 0 && gs.state == StateActive {
				timeout = gs.cfg.OfflinePromoteTimeout
				gs.schedulePromotion(p.ID)
			}

			gs.broadcast(protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
				PlayerID:   p.ID,
				PlayerName: p.Name,
				Timeout:    timeout,
			}))
			log.Printf("🔌 玩家 %s 掉线（对局 %s 座位 %d）", p.Name, gs.ID, p.ID)
			return nil
		}
		return nil
	})
}

// schedulePromotion 到期把掉线座位交给机器人；只在会话协程上调用
func (gs *GameSession) schedulePromotion(seat int) {
	if t, ok := gs.promoteTimers[seat]; ok {
		t.Stop()
	}
	gs.promoteTimers[seat] = time.AfterFunc(gs.cfg.OfflinePromoteTimeoutDuration(), func() {
		gs.promoteToBot(seat)
	})
}

// promoteToBot 掉线超时后座位由机器人接管
func (gs *GameSession) promoteToBot(seat int) {
	_ = gs.dispatch(func() error {
		p := gs.playerBySeat(seat)
		if p == nil || p.Online || p.IsBot || gs.state != StateActive {
			return nil
		}
		delete(gs.promoteTimers, seat)

		p.IsBot = true
		p.Online = true
		p.Token = "" // 旧令牌作废，座位不再归还

		gs.broadcast(protocol.MustNewMessage(protocol.MsgBotAdded, protocol.BotAddedPayload{
			Player: gs.playerInfo(p),
		}))
		log.Printf("🤖 座位 %d（%s）由机器人接管（对局 %s）", seat, p.Name, gs.ID)

		gs.scheduleBotIfNeeded()
		return nil
	})
}
