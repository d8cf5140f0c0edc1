package handler

import (
	"errors"
	"log"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/game"
	"github.com/anisrini/literature/internal/protocol"
	"github.com/anisrini/literature/internal/server/session"
	"github.com/anisrini/literature/internal/server/storage"
	"github.com/anisrini/literature/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server         types.ServerInterface
	GameManager    *game.Manager
	SessionManager *session.Manager
	Store          *storage.RedisStore
}

// Handler 消息处理器
type Handler struct {
	server         types.ServerInterface
	gameManager    *game.Manager
	sessionManager *session.Manager
	store          *storage.RedisStore
	handlers       map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:         deps.Server,
		gameManager:    deps.GameManager,
		sessionManager: deps.SessionManager,
		store:          deps.Store,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing:       h.handlePing,
		protocol.MsgRejoinGame: h.handleRejoinGame,

		// 对局组织
		protocol.MsgCreateGame:     h.handleCreateGame,
		protocol.MsgJoinGame:       h.handleJoinGame,
		protocol.MsgLeaveGame:      func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveGame(c) },
		protocol.MsgAddBot:         h.handleAddBot,
		protocol.MsgForceStartGame: h.handleForceStartGame,

		// 对局操作
		protocol.MsgRequestCard: h.handleRequestCard,
		protocol.MsgDeclareSet:  h.handleDeclareSet,

		// 信息查询
		protocol.MsgGetGameState: h.handleGetGameState,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (连接: %s)", msg.Type, client.GetID())
	log.Printf("    消息详情: Payload长度=%d bytes", len(msg.Payload))
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// sendGameError 把对局错误转成协议错误消息
func sendGameError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessage(gameErr.Code))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
