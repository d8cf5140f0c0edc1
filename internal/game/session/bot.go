package session

import (
	"log"
	"time"

	"github.com/anisrini/literature/internal/game/bot"
	"github.com/anisrini/literature/internal/game/card"
)

// scheduleBotIfNeeded 轮到机器人时安排其延迟行动
// 回调投递回会话的串行队列，不会阻塞其他对局
func (gs *GameSession) scheduleBotIfNeeded() {
	if gs.state != StateActive {
		return
	}
	p := gs.playerBySeat(gs.currentTurn)
	if p == nil || !p.IsBot {
		return
	}

	if gs.botTimer != nil {
		gs.botTimer.Stop()
	}
	seat := p.ID
	gs.botTimer = time.AfterFunc(gs.cfg.BotThinkDelayDuration(), func() {
		gs.botTakeTurn(seat)
	})
}

// botTakeTurn 在独立协程上执行，动作与人类玩家走同一条串行校验路径
func (gs *GameSession) botTakeTurn(seat int) {
	var action bot.Action
	err := gs.dispatch(func() error {
		if gs.state != StateActive || gs.currentTurn != seat {
			return nil // 决策期间局面已变化，放弃本次行动
		}
		action = gs.strategy.Decide(gs.buildBotView(seat))
		return nil
	})
	if err != nil {
		return
	}

	switch {
	case action.Declare != nil:
		err = gs.HandleDeclareSet(seat, action.Declare.Set, action.Declare.Assignment)
	case action.Request != nil:
		err = gs.HandleRequestCard(seat, action.Request.TargetID, action.Request.Card)
	default:
		// 无可行动作（如对方全部掉线）：回合顺延
		err = gs.dispatch(func() error {
			if gs.state == StateActive && gs.currentTurn == seat {
				gs.advanceTurnFrom(seat)
			}
			return nil
		})
	}
	if err != nil {
		log.Printf("🤖 对局 %s: 机器人座位 %d 行动被拒绝: %v", gs.ID, seat, err)
	}
}

// buildBotView 构建机器人可见的信息；只在会话协程上调用
// 机器人与人类信息对称：看不到任何他人手牌
func (gs *GameSession) buildBotView(seat int) bot.View {
	p := gs.playerBySeat(seat)

	hand := make(card.Hand, len(p.Hand))
	copy(hand, p.Hand)

	players := make([]bot.Seatmate, 0, len(gs.players)-1)
	for _, other := range gs.players {
		if other.ID == seat {
			continue
		}
		players = append(players, bot.Seatmate{
			ID:        other.ID,
			Team:      other.Team(),
			CardCount: len(other.Hand),
			Online:    other.Online,
		})
	}

	claimed := make(map[card.SetKey]bool, len(gs.claimedSets))
	for set := range gs.claimedSets {
		claimed[set] = true
	}

	return bot.View{
		Seat:        seat,
		Team:        p.Team(),
		Hand:        hand,
		Players:     players,
		ClaimedSets: claimed,
	}
}

// stopTimers 停止机器人与掉线接管计时器
func (gs *GameSession) stopTimers() {
	if gs.botTimer != nil {
		gs.botTimer.Stop()
		gs.botTimer = nil
	}
	for seat, t := range gs.promoteTimers {
		t.Stop()
		delete(gs.promoteTimers, seat)
	}
}
