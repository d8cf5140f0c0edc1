package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/protocol"
	"github.com/anisrini/literature/internal/testutil"
)

func TestAddHuman_BroadcastsAndAssignsSeats(t *testing.T) {
	t.Parallel()

	gs := NewGameSession("LOBBY1", 6, testConfig(), 1)
	t.Cleanup(gs.Terminate)

	first := &testutil.SimpleClient{ID: "conn0"}
	info, token, err := gs.AddHuman("Alice", first)
	require.NoError(t, err)
	assert.Equal(t, 0, info.ID)
	assert.Equal(t, 0, info.Team)
	assert.NotEmpty(t, token)

	second := &testutil.SimpleClient{ID: "conn1"}
	info2, token2, err := gs.AddHuman("Bob", second)
	require.NoError(t, err)
	assert.Equal(t, 1, info2.ID)
	assert.Equal(t, 1, info2.Team)
	assert.NotEqual(t, token, token2)

	// The earlier player hears about the newcomer
	assert.NotNil(t, first.LastMessage(protocol.MsgPlayerJoined))
	assert.Equal(t, StateLobby, gs.State())
	assert.Equal(t, 2, gs.PlayerCount())
}

func TestAddHuman_AfterStartRejected(t *testing.T) {
	t.Parallel()

	gs, _, _ := newStartedSession(t, 6)

	_, _, err := gs.AddHuman("Latecomer", &testutil.SimpleClient{ID: "late"})
	assert.ErrorIs(t, err, apperrors.ErrGameStarted)
}

func TestAddBot_FillsSeatAndAutoStarts(t *testing.T) {
	t.Parallel()

	gs := NewGameSession("LOBBY2", 6, testConfig(), 1)
	t.Cleanup(gs.Terminate)

	human := &testutil.SimpleClient{ID: "conn0"}
	_, _, err := gs.AddHuman("Alice", human)
	require.NoError(t, err)

	for range 5 {
		_, err := gs.AddBot()
		require.NoError(t, err)
	}

	assert.Equal(t, StateActive, gs.State(), "the sixth seat triggers the deal")
	assert.NotNil(t, human.LastMessage(protocol.MsgGameStarted))

	_, err = gs.AddBot()
	assert.ErrorIs(t, err, apperrors.ErrGameStarted)
}

func TestForceStart_HostOnlyAndFillsBots(t *testing.T) {
	t.Parallel()

	gs := NewGameSession("LOBBY3", 6, testConfig(), 1)
	t.Cleanup(gs.Terminate)

	_, _, err := gs.AddHuman("Alice", &testutil.SimpleClient{ID: "conn0"})
	require.NoError(t, err)

	// Not enough players yet
	assert.ErrorIs(t, gs.ForceStart(0), apperrors.ErrNotEnough)

	_, _, err = gs.AddHuman("Bob", &testutil.SimpleClient{ID: "conn1"})
	require.NoError(t, err)

	// Only the host may pull the trigger
	assert.ErrorIs(t, gs.ForceStart(1), apperrors.ErrNotYourTurn)

	require.NoError(t, gs.ForceStart(0))
	assert.Equal(t, StateActive, gs.State())
	assert.Equal(t, 6, gs.PlayerCount())

	gs.inspect(func() {
		bots := 0
		for _, p := range gs.players {
			if p.IsBot {
				bots++
			}
		}
		assert.Equal(t, 4, bots)
	})
}

func TestTerminate_UnblocksCallers(t *testing.T) {
	t.Parallel()

	gs := NewGameSession("LOBBY4", 6, testConfig(), 1)
	gs.Terminate()

	_, _, err := gs.AddHuman("Alice", &testutil.SimpleClient{ID: "conn0"})
	assert.ErrorIs(t, err, apperrors.ErrGameOver)
}

func TestEightSeatGame_DealsSixCardsEach(t *testing.T) {
	t.Parallel()

	gs, _, _ := newStartedSession(t, 8)

	total := 0
	for seat := range 8 {
		n := handSize(gs, seat)
		assert.Equal(t, 6, n, "seat %d", seat)
		total += n
	}
	assert.Equal(t, 48, total)
}
