package ui

import (
	"fmt"
	"strings"

	"github.com/anisrini/literature/internal/protocol"
)

func (m *Model) View() string {
	var b strings.Builder

	switch m.phase {
	case PhaseConnecting:
		b.WriteString(titleStyle("LITERATURE"))
		b.WriteString("\n\nConnecting to server...\n")

	case PhaseMenu:
		m.viewMenu(&b)

	case PhaseLobby:
		m.viewLobby(&b)

	case PhaseGame:
		m.viewGame(&b)

	case PhaseOver:
		m.viewOver(&b)
	}

	m.viewStatus(&b)

	if m.phase != PhaseConnecting {
		b.WriteString(promptStyle.Render("> " + m.input.View()))
		b.WriteString("\n")
	}

	return docStyle.Render(b.String())
}

func (m *Model) viewMenu(b *strings.Builder) {
	b.WriteString(titleStyle("LITERATURE"))
	b.WriteString("\n\nA team card game of memory and deduction.\n\n")
	b.WriteString("  create <name> [6|8]   start a new game\n")
	b.WriteString("  join <code> <name>    join by game code\n")
	b.WriteString("  quit                  exit\n")
}

func (m *Model) viewLobby(b *strings.Builder) {
	b.WriteString(titleStyle(fmt.Sprintf("GAME %s — waiting for players", m.gameID)))
	b.WriteString("\n\n")

	var rows []string
	for _, p := range m.players {
		rows = append(rows, m.playerLine(p, -1))
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("bot: add a bot | start: fill with bots and begin | leave | quit"))
	b.WriteString("\n")
}

func (m *Model) viewGame(b *strings.Builder) {
	s := m.snapshot
	if s == nil {
		b.WriteString("Waiting for the first snapshot...\n")
		return
	}

	b.WriteString(titleStyle(fmt.Sprintf("GAME %s — seat %d, team %d", m.gameID, s.MyID, s.MyID%2+1)))
	b.WriteString(fmt.Sprintf("  %s %d : %d %s  (ping %dms)\n\n",
		TeamOneIcon, s.Team1Sets, s.Team2Sets, TeamTwoIcon, m.client.Latency))

	// Seats, annotated with the turn marker.
	var rows []string
	for _, p := range s.Opponents {
		rows = append(rows, m.playerLine(p, s.CurrentTurn))
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n\n")

	// Own hand grouped into low and high halves per suit.
	b.WriteString("Your hand:\n")
	b.WriteString(m.handLines(s.MyHand))
	b.WriteString("\n")

	if len(s.AvailableSets) > 0 {
		b.WriteString(dimStyle.Render("open sets: " + strings.Join(s.AvailableSets, ", ")))
		b.WriteString("\n")
	}

	if tail := m.logTail(s.GameLog, 6); tail != "" {
		b.WriteString("\n" + tail)
	}

	if s.CurrentTurn == s.MyID {
		b.WriteString(noticeStyle.Render("\nYour move."))
		b.WriteString("\n")
	} else if m.lastTurn != "" {
		b.WriteString(dimStyle.Render("\n" + m.lastTurn))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("request <seat> <rank> <suit> | declare <low|high> <suit> <6 seats> | state | quit"))
	b.WriteString("\n")
}

func (m *Model) viewOver(b *strings.Builder) {
	b.WriteString(titleStyle("GAME OVER"))
	b.WriteString("\n\n")
	if g := m.gameOver; g != nil {
		b.WriteString(fmt.Sprintf("  %s Team 1: %d sets\n  %s Team 2: %d sets\n\n",
			TeamOneIcon, g.Team1Sets, TeamTwoIcon, g.Team2Sets))
		switch g.WinningTeam {
		case 0:
			b.WriteString("  A dead heat. Nobody brags today.\n")
		default:
			b.WriteString(fmt.Sprintf("  Team %d wins!\n", g.WinningTeam))
		}
	}
	b.WriteString(dimStyle.Render("\nquit to exit"))
	b.WriteString("\n")
}

// viewStatus renders the transient notice and error lines.
func (m *Model) viewStatus(b *strings.Builder) {
	if m.reconnecting {
		b.WriteString(errorStyle.Render(fmt.Sprintf("\nreconnecting... (%d/%d)", m.reconnectAttempt, m.reconnectMax)))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render("\n" + m.notice))
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render("\n" + m.err))
		b.WriteString("\n")
	}
}

// playerLine formats one seat row; turn == -1 hides the marker column.
func (m *Model) playerLine(p protocol.PlayerInfo, turn int) string {
	team := TeamOneIcon
	if p.Team == 1 {
		team = TeamTwoIcon
	}

	marker := "  "
	if p.ID == turn {
		marker = TurnIcon
	}

	tags := ""
	if p.IsBot {
		tags += " " + BotIcon
	}
	if !p.Online {
		tags += " " + OfflineIcon
	}

	return fmt.Sprintf("%s %s seat %d  %-16s %2d cards%s", marker, team, p.ID, p.Name, p.CardsCount, tags)
}

// handLines renders the hand as one line per suit, low half then high.
func (m *Model) handLines(hand []protocol.CardInfo) string {
	bySuit := make(map[string][]string)
	for _, c := range hand {
		rank := c.Rank
		if short, ok := shortRanks[rank]; ok {
			rank = short
		}
		glyph := suitGlyphs[c.Suit]
		face := rank + glyph
		if c.Suit == "Hearts" || c.Suit == "Diamonds" {
			face = redStyle.Render(face)
		} else {
			face = blackStyle.Render(face)
		}
		bySuit[c.Suit] = append(bySuit[c.Suit], face)
	}

	var b strings.Builder
	for _, suit := range []string{"Hearts", "Diamonds", "Clubs", "Spades"} {
		if cards, ok := bySuit[suit]; ok {
			b.WriteString("  " + strings.Join(cards, " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// logTail renders the last n public log entries.
func (m *Model) logTail(entries []protocol.GameLogEntry, n int) string {
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}

	var lines []string
	for _, e := range entries {
		switch e.Action {
		case protocol.LogGameStart:
			lines = append(lines, fmt.Sprintf("dealt %d seats, seat %d opens", e.PlayerCount, e.FirstPlayer))
		case protocol.LogCardRequest:
			verb := "asked"
			if e.Success {
				verb = "took"
			}
			if e.Card != nil {
				lines = append(lines, fmt.Sprintf("seat %d %s %s of %s from seat %d",
					e.Requester, verb, e.Card.Rank, e.Card.Suit, e.Target))
			}
		case protocol.LogSetDeclaration:
			verb := "missed"
			if e.Success {
				verb = "claimed"
			}
			lines = append(lines, fmt.Sprintf("seat %d %s %s", e.Player, verb, e.SetName))
		case protocol.LogGameOver:
			lines = append(lines, fmt.Sprintf("final %d:%d", e.Team1Sets, e.Team2Sets))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return dimStyle.Render(strings.Join(lines, "\n")) + "\n"
}
