// Package ui implements the terminal client for Literature games.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/anisrini/literature/internal/client"
	"github.com/anisrini/literature/internal/protocol"
)

// GamePhase represents the current screen of the client.
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseMenu
	PhaseLobby
	PhaseGame
	PhaseOver
)

// Messages delivered into the bubbletea loop.
type (
	// ConnectedMsg is emitted once the WebSocket handshake succeeds.
	ConnectedMsg struct{}

	// ConnectionErrorMsg carries a transport-level failure.
	ConnectionErrorMsg struct{ Err error }

	// ServerMessage wraps one decoded protocol message.
	ServerMessage struct{ Msg *protocol.Message }

	// ReconnectingMsg reports an automatic reconnect attempt.
	ReconnectingMsg struct{ Attempt, MaxTries int }

	// ReconnectSuccessMsg reports that the seat was recovered.
	ReconnectSuccessMsg struct{}
)

// Model is the top-level bubbletea model.
type Model struct {
	client *client.Client
	phase  GamePhase

	// Transient status line contents.
	err    string
	notice string

	// Lobby state.
	gameID  string
	mySeat  int
	players []protocol.PlayerInfo

	// Game state, replaced wholesale by every snapshot.
	snapshot *protocol.GameStateUpdatePayload
	lastTurn string
	gameOver *protocol.GameOverPayload

	reconnecting     bool
	reconnectAttempt int
	reconnectMax     int
	reconnectChan    chan tea.Msg

	latency int64

	input  textinput.Model
	width  int
	height int
}

// NewModel creates the client model for the given ws:// URL.
func NewModel(serverURL string) *Model {
	ti := textinput.New()
	ti.Placeholder = "command (? shows help)"
	ti.CharLimit = 120
	ti.Width = 60
	ti.Focus()

	c := client.NewClient(serverURL)
	reconnectChan := make(chan tea.Msg, 10)

	m := &Model{
		client:        c,
		phase:         PhaseConnecting,
		input:         ti,
		reconnectChan: reconnectChan,
	}

	c.OnReconnecting = func(attempt, maxTries int) {
		select {
		case reconnectChan <- ReconnectingMsg{Attempt: attempt, MaxTries: maxTries}:
		default:
		}
	}
	c.OnReconnect = func() {
		select {
		case reconnectChan <- ReconnectSuccessMsg{}:
		default:
		}
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
		m.listenForReconnect(),
	)
}

func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func (m *Model) listenForReconnect() tea.Cmd {
	return func() tea.Msg {
		return <-m.reconnectChan
	}
}
