package session

import (
	"log"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/game/card"
	"github.com/anisrini/literature/internal/protocol"
)

// HandleDeclareSet 处理半套牌声明
// 六张归属全部正确才算成功；任何一张错误即失败并送分给对方
func (gs *GameSession) HandleDeclareSet(seat int, set card.SetKey, assignment map[card.Card]int) error {
	return gs.dispatchAction(func() error {
		return gs.resolveDeclaration(seat, set, assignment)
	})
}

// resolveDeclaration 校验并结算声明；前置校验失败时不改动任何状态
func (gs *GameSession) resolveDeclaration(seat int, set card.SetKey, assignment map[card.Card]int) error {
	if gs.state == StateOver {
		return apperrors.ErrGameOver
	}
	if gs.state != StateActive {
		return apperrors.ErrGameNotStart
	}

	declarer := gs.playerBySeat(seat)
	if declarer == nil {
		return apperrors.ErrPlayerNotFound
	}
	if seat != gs.currentTurn {
		return apperrors.ErrNotYourTurn
	}

	if _, claimed := gs.claimedSets[set]; claimed {
		return apperrors.ErrSetAlreadyClaimed
	}

	// 归属表必须恰好覆盖该半套牌的 6 张牌
	setCards := set.Cards()
	if len(assignment) != len(setCards) {
		return apperrors.ErrIncompleteAssignment
	}
	for _, c := range setCards {
		ownerSeat, ok := assignment[c]
		if !ok {
			return apperrors.ErrIncompleteAssignment
		}
		owner := gs.playerBySeat(ownerSeat)
		if owner == nil {
			return apperrors.ErrPlayerNotFound
		}
		// 只能把牌归属给自己队伍（含自己）
		if owner.Team() != declarer.Team() {
			return apperrors.ErrForeignPlayerAssigned
		}
	}

	// 六张同时正确才成功
	success := true
	for _, c := range setCards {
		if !gs.playerBySeat(assignment[c]).Hand.Has(c) {
			success = false
			break
		}
	}

	// 无论成败，该半套牌的位置已经暴露，整组退出流通
	for _, p := range gs.players {
		p.Hand.RemoveSet(set)
	}

	winningTeam := declarer.Team()
	if !success {
		// 错误声明把这一分送给对方队伍
		winningTeam = 1 - winningTeam
	}
	gs.claimedSets[set] = winningTeam
	gs.teamSets[winningTeam]++

	gs.appendLog(protocol.GameLogEntry{
		Action:    protocol.LogSetDeclaration,
		Turn:      gs.currentTurn,
		Player:    seat,
		SetName:   set.Name(),
		Success:   success,
		Team1Sets: gs.teamSets[0],
		Team2Sets: gs.teamSets[1],
	})

	log.Printf("📣 对局 %s: %s 声明 %s，成功=%v，得分队伍=%d",
		gs.ID, declarer.Name, set.Name(), success, winningTeam)

	gs.checkInvariant()

	gameOver := len(gs.claimedSets) == 8

	nextTurn := gs.currentTurn
	if !gameOver {
		// 无论成败，回合顺延到声明者的下一个座位
		gs.advanceTurnFromQuiet(seat)
		nextTurn = gs.currentTurn
	}

	gs.broadcast(protocol.MustNewMessage(protocol.MsgSetDeclarationResult, protocol.SetDeclarationResultPayload{
		DeclaringPlayer: seat,
		SetName:         set.Name(),
		Success:         success,
		TeamThatWon:     winningTeam + 1, // 对外与 winning_team 同为 1/2 编号
		NextTurn:        nextTurn,
	}))
	gs.broadcastSnapshots()

	if gameOver {
		gs.endGame()
		return nil
	}

	gs.announceTurn()
	return nil
}

// advanceTurnFromQuiet 顺延回合但不广播，结果并入声明结果消息
func (gs *GameSession) advanceTurnFromQuiet(seat int) {
	n := len(gs.players)
	for i := 1; i <= n; i++ {
		next := (seat + i) % n
		if len(gs.players[next].Hand) > 0 {
			gs.currentTurn = next
			return
		}
	}
}

// announceTurn 广播当前回合并安排机器人行动
func (gs *GameSession) announceTurn() {
	if p := gs.playerBySeat(gs.currentTurn); p != nil {
		gs.broadcast(protocol.MustNewMessage(protocol.MsgTurnChange, protocol.TurnChangePayload{
			PlayerID:   p.ID,
			PlayerName: p.Name,
		}))
	}
	gs.scheduleBotIfNeeded()
}

// endGame 第 8 个半套牌被声明后结束对局
func (gs *GameSession) endGame() {
	gs.state = StateOver

	winningTeam := 0 // 平局
	switch {
	case gs.teamSets[0] > gs.teamSets[1]:
		winningTeam = 1
	case gs.teamSets[1] > gs.teamSets[0]:
		winningTeam = 2
	}

	gs.appendLog(protocol.GameLogEntry{
		Action:      protocol.LogGameOver,
		Turn:        gs.currentTurn,
		Team1Sets:   gs.teamSets[0],
		Team2Sets:   gs.teamSets[1],
		WinningTeam: winningTeam,
	})

	gs.broadcast(protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		Team1Sets:   gs.teamSets[0],
		Team2Sets:   gs.teamSets[1],
		WinningTeam: winningTeam,
	}))

	gs.stopTimers()

	log.Printf("🏁 对局 %s 结束：Team A %d - %d Team B", gs.ID, gs.teamSets[0], gs.teamSets[1])
}
