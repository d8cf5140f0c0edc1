package handler

import (
	"log"
	"time"

	"github.com/anisrini/literature/internal/protocol"
	"github.com/anisrini/literature/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleRejoinGame 处理断线重连
// 座位与手牌始终保留在对局里，重连只是把新连接挂回座位并补发快照
func (h *Handler) handleRejoinGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RejoinGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	gs, err := h.gameManager.GetGame(payload.GameID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	rejoined, err := gs.Rejoin(payload.PlayerID, payload.Token, client)
	if err != nil {
		sendGameError(client, err)
		return
	}

	// 同一座位如果还有存活的旧连接绑定，先挤掉它，
	// 避免两条连接同时代表一个座位提交动作
	if oldConn, ok := h.sessionManager.UnbindSeat(payload.GameID, payload.PlayerID); ok && oldConn != client.GetID() {
		if old := h.server.GetClientByID(oldConn); old != nil {
			old.SetGame("")
		}
	}

	h.sessionManager.Bind(client.GetID(), payload.GameID, payload.PlayerID)
	client.SetGame(payload.GameID)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRejoined, rejoined))

	h.markSeatOnline(payload.GameID, payload.PlayerID, true)

	log.Printf("🔄 连接 %s 重连对局 %s 座位 %d", client.GetID(), payload.GameID, payload.PlayerID)
}
