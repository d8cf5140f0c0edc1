package session

import (
	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/game/card"
	"github.com/anisrini/literature/internal/protocol"
)

// Snapshot 构建指定座位视角的全量快照
func (gs *GameSession) Snapshot(forSeat int) (*protocol.GameStateUpdatePayload, error) {
	var snap *protocol.GameStateUpdatePayload
	err := gs.dispatch(func() error {
		if gs.playerBySeat(forSeat) == nil {
			return apperrors.ErrPlayerNotFound
		}
		snap = gs.buildSnapshot(forSeat)
		return nil
	})
	return snap, err
}

// buildSnapshot 只在会话协程上调用
// 安全不变量：其他玩家的手牌内容绝不出现在出站消息中，只暴露数量
func (gs *GameSession) buildSnapshot(forSeat int) *protocol.GameStateUpdatePayload {
	me := gs.playerBySeat(forSeat)

	myHand := make([]protocol.CardInfo, 0, len(me.Hand))
	for _, c := range me.Hand.Sorted() {
		myHand = append(myHand, protocol.CardInfo{Rank: c.Rank.String(), Suit: c.Suit.String()})
	}

	opponents := make([]protocol.PlayerInfo, 0, len(gs.players)-1)
	for _, p := range gs.players {
		if p.ID == forSeat {
			continue
		}
		opponents = append(opponents, gs.playerInfo(p))
	}

	available := make([]string, 0, 8)
	for _, set := range card.AllSets() {
		if _, claimed := gs.claimedSets[set]; !claimed {
			available = append(available, set.Name())
		}
	}

	// 日志只传输尾部窗口；已声明半套牌的台账独立于日志，永不截断
	tail := gs.gameLog
	if len(tail) > transmittedLogTail {
		tail = tail[len(tail)-transmittedLogTail:]
	}
	gameLog := make([]protocol.GameLogEntry, len(tail))
	copy(gameLog, tail)

	return &protocol.GameStateUpdatePayload{
		MyID:          forSeat,
		CurrentTurn:   gs.currentTurn,
		MyHand:        myHand,
		Opponents:     opponents,
		AvailableSets: available,
		Team1Sets:     gs.teamSets[0],
		Team2Sets:     gs.teamSets[1],
		GameLog:       gameLog,
		GameOver:      gs.state == StateOver,
	}
}
