package ui

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anisrini/literature/internal/protocol"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.client.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m, m.execute(line)
		}

	case ConnectedMsg:
		m.phase = PhaseMenu
		m.err = ""
		m.client.StartHeartbeat()
		return m, m.listenForMessages()

	case ConnectionErrorMsg:
		m.err = fmt.Sprintf("connection lost: %v", msg.Err)
		return m, nil

	case ReconnectingMsg:
		m.reconnecting = true
		m.reconnectAttempt = msg.Attempt
		m.reconnectMax = msg.MaxTries
		return m, m.listenForReconnect()

	case ReconnectSuccessMsg:
		m.reconnecting = false
		m.err = ""
		m.notice = "reconnected"
		return m, tea.Batch(m.listenForMessages(), m.listenForReconnect())

	case ServerMessage:
		m.applyServer(msg.Msg)
		return m, m.listenForMessages()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyServer folds one server message into the model.
// Snapshots are authoritative and replace local state wholesale.
func (m *Model) applyServer(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgError:
		var p protocol.ErrorPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.err = fmt.Sprintf("[%d] %s", p.Code, p.Message)
		}

	case protocol.MsgGameCreated:
		var p protocol.GameCreatedPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.gameID = p.GameID
			m.mySeat = p.Player.ID
			m.players = []protocol.PlayerInfo{p.Player}
			m.phase = PhaseLobby
			m.err = ""
			m.notice = fmt.Sprintf("game %s created, share the code", p.GameID)
		}

	case protocol.MsgJoinSuccess:
		var p protocol.JoinSuccessPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.gameID = p.GameID
			m.mySeat = p.Player.ID
			m.players = p.Players
			m.phase = PhaseLobby
			m.err = ""
		}

	case protocol.MsgPlayerJoined:
		var p protocol.PlayerJoinedPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.players = append(m.players, p.Player)
			m.notice = fmt.Sprintf("%s sat down at seat %d", p.Player.Name, p.Player.ID)
		}

	case protocol.MsgBotAdded:
		var p protocol.BotAddedPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.upsertPlayer(p.Player)
			m.notice = fmt.Sprintf("%s is now a bot", p.Player.Name)
		}

	case protocol.MsgGameStarted:
		var p protocol.GameStartedPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.players = p.Players
			m.phase = PhaseGame
			m.notice = fmt.Sprintf("game on, seat %d moves first", p.FirstPlayer)
		}

	case protocol.MsgGameStateUpdate:
		var p protocol.GameStateUpdatePayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.snapshot = &p
			if m.phase != PhaseOver {
				m.phase = PhaseGame
			}
		}

	case protocol.MsgRejoined:
		var p protocol.RejoinedPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.gameID = p.GameID
			m.mySeat = p.PlayerID
			if p.GameState != nil {
				m.snapshot = p.GameState
				m.phase = PhaseGame
			} else {
				m.phase = PhaseLobby
			}
		}

	case protocol.MsgTurnChange:
		var p protocol.TurnChangePayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.lastTurn = fmt.Sprintf("turn: %s (seat %d)", p.PlayerName, p.PlayerID)
		}

	case protocol.MsgCardRequestResult:
		var p protocol.CardRequestResultPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			outcome := "missed"
			if p.Success {
				outcome = "took"
			}
			m.notice = fmt.Sprintf("seat %d %s the %s of %s from seat %d",
				p.RequestingPlayer, outcome, p.Card.Rank, p.Card.Suit, p.TargetPlayer)
		}

	case protocol.MsgSetDeclarationResult:
		var p protocol.SetDeclarationResultPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			outcome := "flubbed"
			if p.Success {
				outcome = "claimed"
			}
			m.notice = fmt.Sprintf("seat %d %s %s, point to team %d",
				p.DeclaringPlayer, outcome, p.SetName, p.TeamThatWon)
		}

	case protocol.MsgGameOver:
		var p protocol.GameOverPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.gameOver = &p
			m.phase = PhaseOver
		}

	case protocol.MsgPlayerOffline:
		var p protocol.PlayerOfflinePayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			if p.Timeout > 0 {
				m.notice = fmt.Sprintf("%s went offline, bot takes over in %ds", p.PlayerName, p.Timeout)
			} else {
				m.notice = fmt.Sprintf("%s went offline", p.PlayerName)
			}
		}

	case protocol.MsgPlayerOnline:
		var p protocol.PlayerOnlinePayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			m.notice = fmt.Sprintf("%s is back", p.PlayerName)
		}
	}
}

func (m *Model) upsertPlayer(info protocol.PlayerInfo) {
	for i := range m.players {
		if m.players[i].ID == info.ID {
			m.players[i] = info
			return
		}
	}
	m.players = append(m.players, info)
}
