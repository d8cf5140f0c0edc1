//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/anisrini/literature/internal/types"
)

// MockServer 实现 types.ServerInterface 的 mock
type MockServer struct {
	mock.Mock
}

func (m *MockServer) IsMaintenanceMode() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockServer) GetOnlineCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockServer) GetClientByID(id string) types.ClientInterface {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.ClientInterface)
}

func (m *MockServer) RegisterClient(id string, client types.ClientInterface) {
	m.Called(id, client)
}

func (m *MockServer) UnregisterClient(id string) {
	m.Called(id)
}

// SimpleServer 不做断言的服务器替身
type SimpleServer struct {
	Maintenance bool
	Clients     map[string]types.ClientInterface
}

func NewSimpleServer() *SimpleServer {
	return &SimpleServer{Clients: make(map[string]types.ClientInterface)}
}

func (s *SimpleServer) IsMaintenanceMode() bool { return s.Maintenance }
func (s *SimpleServer) GetOnlineCount() int     { return len(s.Clients) }
func (s *SimpleServer) GetClientByID(id string) types.ClientInterface {
	return s.Clients[id]
}
func (s *SimpleServer) RegisterClient(id string, client types.ClientInterface) {
	s.Clients[id] = client
}
func (s *SimpleServer) UnregisterClient(id string) {
	delete(s.Clients, id)
}
