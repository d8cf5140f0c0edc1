package session

import (
	"log"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/game/card"
	"github.com/anisrini/literature/internal/protocol"
)

// HandleRequestCard 处理要牌动作
// 命中则牌移动且回合保留给要牌者；未命中则回合交给被问者
func (gs *GameSession) HandleRequestCard(seat, targetSeat int, c card.Card) error {
	return gs.dispatchAction(func() error {
		return gs.resolveRequest(seat, targetSeat, c)
	})
}

// resolveRequest 校验并结算要牌；前置校验失败时不改动任何状态
func (gs *GameSession) resolveRequest(seat, targetSeat int, c card.Card) error {
	if gs.state == StateOver {
		return apperrors.ErrGameOver
	}
	if gs.state != StateActive {
		return apperrors.ErrGameNotStart
	}

	requester := gs.playerBySeat(seat)
	if requester == nil {
		return apperrors.ErrPlayerNotFound
	}
	if seat != gs.currentTurn {
		return apperrors.ErrNotYourTurn
	}

	// 目标必须是对方队伍的在线玩家；空手牌座位已退出流通，不可被问
	target := gs.playerBySeat(targetSeat)
	if target == nil || targetSeat == seat || target.Team() == requester.Team() || !target.Online || len(target.Hand) == 0 {
		return apperrors.ErrInvalidTarget
	}

	// 所属半套牌已被声明的牌不再流通
	if _, claimed := gs.claimedSets[card.SetOf(c)]; claimed {
		return apperrors.ErrSetAlreadyClaimed
	}

	// 合法性核心：必须已持有同点数的其他牌，且不能持有所要的牌本身
	if requester.Hand.Has(c) || !requester.Hand.HasRank(c.Rank) {
		return apperrors.ErrMustHoldRank
	}

	success := target.Hand.Has(c)
	if success {
		// 命中：牌移动，回合保留
		target.Hand.Remove(c)
		requester.Hand.Add(c)
	}

	nextTurn := seat
	if !success {
		// 未命中：回合交给被问者，而非顺延下一座位
		nextTurn = targetSeat
	}

	gs.appendLog(protocol.GameLogEntry{
		Action:    protocol.LogCardRequest,
		Turn:      nextTurn,
		Requester: seat,
		Target:    targetSeat,
		Card:      &protocol.CardInfo{Rank: c.Rank.String(), Suit: c.Suit.String()},
		Success:   success,
	})

	gs.broadcast(protocol.MustNewMessage(protocol.MsgCardRequestResult, protocol.CardRequestResultPayload{
		RequestingPlayer: seat,
		TargetPlayer:     targetSeat,
		Card:             protocol.CardInfo{Rank: c.Rank.String(), Suit: c.Suit.String()},
		Success:          success,
		NextTurn:         nextTurn,
	}))

	log.Printf("🃏 对局 %s: %s 向 %s 要 %s，命中=%v",
		gs.ID, requester.Name, target.Name, c, success)

	gs.checkInvariant()
	gs.broadcastSnapshots()
	gs.setTurn(nextTurn)
	return nil
}
