//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/anisrini/literature/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetName(name string) {
	m.Called(name)
}

func (m *MockClient) GetGame() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetGame(gameID string) {
	m.Called(gameID)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言的测试）
type SimpleClient struct {
	ID       string
	Name     string
	GameID   string
	Messages []*protocol.Message
}

func (m *SimpleClient) GetID() string                     { return m.ID }
func (m *SimpleClient) GetName() string                   { return m.Name }
func (m *SimpleClient) SetName(name string)               { m.Name = name }
func (m *SimpleClient) GetGame() string                   { return m.GameID }
func (m *SimpleClient) SetGame(id string)                 { m.GameID = id }
func (m *SimpleClient) SendMessage(msg *protocol.Message) { m.Messages = append(m.Messages, msg) }
func (m *SimpleClient) Close()                            {}

// LastMessage 返回最后收到的某类型消息，没有时返回 nil
func (m *SimpleClient) LastMessage(msgType protocol.MessageType) *protocol.Message {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Type == msgType {
			return m.Messages[i]
		}
	}
	return nil
}
