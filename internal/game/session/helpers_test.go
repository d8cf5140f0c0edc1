package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anisrini/literature/internal/config"
	"github.com/anisrini/literature/internal/game/card"
	"github.com/anisrini/literature/internal/testutil"
)

// testConfig returns a game config whose timers never fire during tests.
func testConfig() *config.GameConfig {
	cfg := config.Default().Game
	cfg.BotThinkDelay = 3_600_000 // an hour; bots must not move on their own
	cfg.OfflinePromoteTimeout = 0
	return &cfg
}

// inspect runs fn on the session goroutine and waits for it.
func (gs *GameSession) inspect(fn func()) {
	_ = gs.dispatch(func() error {
		fn()
		return nil
	})
}

// newStartedSession seats `seats` humans, which auto-starts the game,
// and returns their fake clients and reconnect tokens by seat.
func newStartedSession(t *testing.T, seats int) (*GameSession, []*testutil.SimpleClient, []string) {
	t.Helper()

	gs := NewGameSession("TEST01", seats, testConfig(), 1)
	t.Cleanup(gs.Terminate)

	clients := make([]*testutil.SimpleClient, seats)
	tokens := make([]string, seats)
	for i := range seats {
		clients[i] = &testutil.SimpleClient{ID: fmt.Sprintf("conn%d", i)}
		info, token, err := gs.AddHuman(fmt.Sprintf("P%d", i), clients[i])
		require.NoError(t, err)
		require.Equal(t, i, info.ID)
		tokens[i] = token
	}

	require.Equal(t, StateActive, gs.State())
	return gs, clients, tokens
}

// rigBlockDeal replaces the shuffled deal with a deterministic one:
// seat i holds NewDeck()[8i:8i+8], and seat 0 is on turn.
//
// With 6 seats that works out to:
//
//	seat0: 2-7,9,10 of Hearts        seat1: J-A of Hearts, 2-5 of Diamonds
//	seat2: 6,7,9-A of Diamonds       seat3: 2-7,9,10 of Clubs
//	seat4: J-A of Clubs, 2-5 of Spades  seat5: 6,7,9-A of Spades
func rigBlockDeal(gs *GameSession) {
	gs.inspect(func() {
		deck := card.NewDeck()
		per := len(deck) / len(gs.players)
		for i, p := range gs.players {
			p.Hand = append(card.Hand(nil), deck[per*i:per*(i+1)]...)
		}
		gs.currentTurn = 0
	})
}

// handSize reads a seat's hand size on the session goroutine.
func handSize(gs *GameSession, seat int) int {
	var n int
	gs.inspect(func() { n = len(gs.players[seat].Hand) })
	return n
}

// currentTurn reads the turn pointer on the session goroutine.
func currentTurn(gs *GameSession) int {
	var turn int
	gs.inspect(func() { turn = gs.currentTurn })
	return turn
}

func c(rank card.Rank, suit card.Suit) card.Card {
	return card.Card{Suit: suit, Rank: rank}
}

// uniformAssignment maps every card of the set to one seat.
func uniformAssignment(set card.SetKey, seat int) map[card.Card]int {
	assignment := make(map[card.Card]int, 6)
	for _, sc := range set.Cards() {
		assignment[sc] = seat
	}
	return assignment
}
