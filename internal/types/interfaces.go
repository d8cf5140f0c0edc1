package types

import (
	"github.com/anisrini/literature/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	IsMaintenanceMode() bool
	GetOnlineCount() int
	GetClientByID(id string) ClientInterface
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
}

// ClientInterface 定义客户端连接接口
// 每个 WebSocket 连接一个实例，状态不跨连接共享
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetGame() string
	SetGame(gameID string)
	SendMessage(msg *protocol.Message)
	Close()
}
