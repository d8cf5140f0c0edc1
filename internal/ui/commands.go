package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anisrini/literature/internal/game/card"
)

// execute parses one input line against the current phase.
// Errors stay local; nothing is sent unless the command is well-formed.
func (m *Model) execute(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	m.err = ""

	switch strings.ToLower(fields[0]) {
	case "q", "quit":
		if m.gameID != "" {
			_ = m.client.LeaveGame()
		}
		m.client.Close()
		return tea.Quit
	}

	switch m.phase {
	case PhaseMenu:
		return m.executeMenu(fields)
	case PhaseLobby:
		return m.executeLobby(fields)
	case PhaseGame:
		m.executeGame(fields)
	}
	return nil
}

func (m *Model) executeMenu(fields []string) tea.Cmd {
	switch strings.ToLower(fields[0]) {
	case "c", "create":
		if len(fields) < 2 {
			m.err = "usage: create <name> [6|8]"
			return nil
		}
		seats := 0
		if len(fields) >= 3 {
			seats, _ = strconv.Atoi(fields[2])
		}
		if err := m.client.CreateGame(fields[1], seats); err != nil {
			m.err = err.Error()
		}

	case "j", "join":
		if len(fields) < 3 {
			m.err = "usage: join <game-code> <name>"
			return nil
		}
		if err := m.client.JoinGame(fields[1], fields[2]); err != nil {
			m.err = err.Error()
		}

	default:
		m.err = "unknown command, try: create <name> [6|8] | join <code> <name> | quit"
	}
	return nil
}

func (m *Model) executeLobby(fields []string) tea.Cmd {
	switch strings.ToLower(fields[0]) {
	case "b", "bot":
		if err := m.client.AddBot(); err != nil {
			m.err = err.Error()
		}

	case "f", "start":
		if err := m.client.ForceStart(); err != nil {
			m.err = err.Error()
		}

	case "l", "leave":
		_ = m.client.LeaveGame()
		m.gameID = ""
		m.players = nil
		m.phase = PhaseMenu

	default:
		m.err = "unknown command, try: bot | start | leave | quit"
	}
	return nil
}

func (m *Model) executeGame(fields []string) {
	switch strings.ToLower(fields[0]) {
	case "r", "request":
		// request <seat> <rank> <suit>, e.g. "request 3 Jack Hearts"
		if len(fields) != 4 {
			m.err = "usage: request <seat> <rank> <suit>"
			return
		}
		seat, err := strconv.Atoi(fields[1])
		if err != nil {
			m.err = "seat must be a number"
			return
		}
		rank := titleWord(fields[2])
		suit := titleWord(fields[3])
		if err := m.client.RequestCard(seat, rank, suit); err != nil {
			m.err = err.Error()
		}

	case "d", "declare":
		m.executeDeclare(fields)

	case "g", "state":
		if err := m.client.GetGameState(); err != nil {
			m.err = err.Error()
		}

	default:
		m.err = "unknown command, try: request <seat> <rank> <suit> | declare <low|high> <suit> <6 seats> | state | quit"
	}
}

// executeDeclare maps "declare low hearts 0 2 4 0 2 4" onto the six
// cards of the set in ascending rank order.
func (m *Model) executeDeclare(fields []string) {
	if len(fields) != 9 {
		m.err = "usage: declare <low|high> <suit> <seat> x6 (cards in rank order)"
		return
	}

	setName := titleWord(fields[1]) + " " + titleWord(fields[2])
	set, err := card.ParseSetName(setName)
	if err != nil {
		m.err = err.Error()
		return
	}

	assignments := make(map[string]int, 6)
	for i, c := range set.Cards() {
		seat, err := strconv.Atoi(fields[3+i])
		if err != nil {
			m.err = "seats must be numbers"
			return
		}
		assignments[c.Key()] = seat
	}

	if err := m.client.DeclareSet(setName, assignments); err != nil {
		m.err = err.Error()
	}
}

// titleWord uppercases the first letter so "jack"/"HEARTS" both parse.
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
