package session

import (
	"sync"
)

// Binding 一个连接当前占有的座位
type Binding struct {
	GameID string
	Seat   int
}

// Manager 连接与座位的绑定关系
// 动作路由只信任服务端的绑定，不信任消息里自报的 player_id
type Manager struct {
	byConn map[string]Binding // connID -> binding
	mu     sync.RWMutex
}

// NewManager 创建绑定管理器
func NewManager() *Manager {
	return &Manager{
		byConn: make(map[string]Binding),
	}
}

// Bind 记录连接占有的座位（加入或重连成功后调用）
func (m *Manager) Bind(connID, gameID string, seat int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byConn[connID] = Binding{GameID: gameID, Seat: seat}
}

// Lookup 查询连接的座位绑定
func (m *Manager) Lookup(connID string) (Binding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.byConn[connID]
	return b, ok
}

// Unbind 解除连接绑定（断开时调用；座位本身保留在对局中）
func (m *Manager) Unbind(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byConn, connID)
}

// UnbindSeat 挤掉占有指定座位的旧连接绑定，返回被挤掉的连接 ID
// 重连成功时调用，保证一个座位至多一条连接可以代表它行动
func (m *Manager) UnbindSeat(gameID string, seat int) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for connID, b := range m.byConn {
		if b.GameID == gameID && b.Seat == seat {
			delete(m.byConn, connID)
			return connID, true
		}
	}
	return "", false
}

// Count 当前绑定数量
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byConn)
}
