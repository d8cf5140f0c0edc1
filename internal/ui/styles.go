package ui

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	TeamOneIcon = "🔵"
	TeamTwoIcon = "🔴"
	BotIcon     = "🤖"
	OfflineIcon = "💤"
	TurnIcon    = "👉"
)

// Lipgloss styles shared by all phases
var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Bold(true)
	blackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// suitGlyphs maps wire suit names to table glyphs.
var suitGlyphs = map[string]string{
	"Hearts":   "♥",
	"Diamonds": "♦",
	"Clubs":    "♣",
	"Spades":   "♠",
}

// shortRanks compresses court ranks for the hand line.
var shortRanks = map[string]string{
	"Jack":  "J",
	"Queen": "Q",
	"King":  "K",
	"Ace":   "A",
}
