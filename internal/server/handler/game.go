package handler

import (
	"strings"

	"github.com/anisrini/literature/internal/game/card"
	"github.com/anisrini/literature/internal/game/session"
	"github.com/anisrini/literature/internal/protocol"
	"github.com/anisrini/literature/internal/types"
)

const maxNameLength = 32

// sanitizeName 清理玩家昵称，非法时返回空串
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return ""
	}
	return name
}

// handleCreateGame 处理创建对局
func (h *Handler) handleCreateGame(client types.ClientInterface, msg *protocol.Message) {
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeServerMaintenance))
		return
	}

	payload, err := protocol.ParsePayload[protocol.CreateGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	name := sanitizeName(payload.Name)
	if name == "" {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "A player name is required"))
		return
	}

	if client.GetGame() != "" {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "This connection is already seated in a game"))
		return
	}

	gs := h.gameManager.CreateGame(payload.PlayerCount)

	info, token, err := gs.AddHuman(name, client)
	if err != nil {
		h.gameManager.RemoveGame(gs.ID)
		sendGameError(client, err)
		return
	}

	h.sessionManager.Bind(client.GetID(), gs.ID, info.ID)
	client.SetName(name)
	client.SetGame(gs.ID)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgGameCreated, protocol.GameCreatedPayload{
		GameID: gs.ID,
		Player: info,
		Token:  token,
	}))

	h.persistGame(gs)
	h.persistSeat(gs.ID, info.ID, name, token, true)
}

// handleJoinGame 处理加入对局
func (h *Handler) handleJoinGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	name := sanitizeName(payload.Name)
	if name == "" {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "A player name is required"))
		return
	}

	if client.GetGame() != "" {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "This connection is already seated in a game"))
		return
	}

	gs, err := h.gameManager.GetGame(payload.GameID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	info, token, err := gs.AddHuman(name, client)
	if err != nil {
		sendGameError(client, err)
		return
	}

	h.sessionManager.Bind(client.GetID(), gs.ID, info.ID)
	client.SetName(name)
	client.SetGame(gs.ID)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgJoinSuccess, protocol.JoinSuccessPayload{
		GameID:  gs.ID,
		Player:  info,
		Token:   token,
		Players: gs.Players(),
	}))

	h.persistGame(gs)
	h.persistSeat(gs.ID, info.ID, name, token, true)
}

// handleLeaveGame 处理主动离开
// 座位与手牌保留在对局中：离开等同于掉线，令牌仍可用于回归
func (h *Handler) handleLeaveGame(client types.ClientInterface) {
	binding, ok := h.sessionManager.Lookup(client.GetID())
	if !ok {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInGame))
		return
	}

	if gs, err := h.gameManager.GetGame(binding.GameID); err == nil {
		gs.HandleDisconnect(client.GetID())
	}

	h.sessionManager.Unbind(client.GetID())
	client.SetGame("")

	h.markSeatOnline(binding.GameID, binding.Seat, false)
}

// handleAddBot 处理添加机器人（仅限开局前，发起者必须已在该对局入座）
func (h *Handler) handleAddBot(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.AddBotPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	gs, ok := h.boundGame(client, payload.GameID)
	if !ok {
		return
	}

	if _, err := gs.AddBot(); err != nil {
		sendGameError(client, err)
		return
	}

	h.persistGame(gs)
}

// handleForceStartGame 处理强制开局，空位由机器人补齐
func (h *Handler) handleForceStartGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ForceStartGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	binding, ok := h.sessionManager.Lookup(client.GetID())
	if !ok || binding.GameID != payload.GameID {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInGame))
		return
	}

	gs, err := h.gameManager.GetGame(binding.GameID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	if err := gs.ForceStart(binding.Seat); err != nil {
		sendGameError(client, err)
		return
	}

	h.persistGame(gs)
}

// handleRequestCard 处理要牌
// 行动者身份取自连接绑定的座位，消息里自报的 player_id 不可信
func (h *Handler) handleRequestCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RequestCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	binding, ok := h.sessionManager.Lookup(client.GetID())
	if !ok || binding.GameID != payload.GameID {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInGame))
		return
	}

	rank, err := card.ParseRank(payload.CardRank)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
		return
	}
	suit, err := card.ParseSuit(payload.CardSuit)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
		return
	}

	gs, err := h.gameManager.GetGame(binding.GameID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	if err := gs.HandleRequestCard(binding.Seat, payload.TargetID, card.Card{Suit: suit, Rank: rank}); err != nil {
		sendGameError(client, err)
	}
}

// handleDeclareSet 处理半套牌声明
func (h *Handler) handleDeclareSet(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.DeclareSetPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	binding, ok := h.sessionManager.Lookup(client.GetID())
	if !ok || binding.GameID != payload.GameID {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInGame))
		return
	}

	set, err := card.ParseSetName(payload.SetName)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
		return
	}

	assignment := make(map[card.Card]int, len(payload.CardAssignments))
	for key, seat := range payload.CardAssignments {
		c, err := card.ParseKey(key)
		if err != nil {
			client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
			return
		}
		assignment[c] = seat
	}

	gs, err := h.gameManager.GetGame(binding.GameID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	if err := gs.HandleDeclareSet(binding.Seat, set, assignment); err != nil {
		sendGameError(client, err)
		return
	}

	h.persistGame(gs)
}

// handleGetGameState 处理快照拉取（重连后或客户端主动对账）
func (h *Handler) handleGetGameState(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetGameStatePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	gs, ok := h.boundGame(client, payload.GameID)
	if !ok {
		return
	}

	binding, _ := h.sessionManager.Lookup(client.GetID())
	snapshot, err := gs.Snapshot(binding.Seat)
	if err != nil {
		sendGameError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgGameStateUpdate, snapshot))
}

// boundGame 校验连接已绑定到指定对局并返回会话
func (h *Handler) boundGame(client types.ClientInterface, gameID string) (*session.GameSession, bool) {
	binding, ok := h.sessionManager.Lookup(client.GetID())
	if !ok || binding.GameID != gameID {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInGame))
		return nil, false
	}

	gs, err := h.gameManager.GetGame(binding.GameID)
	if err != nil {
		sendGameError(client, err)
		return nil, false
	}
	return gs, true
}
