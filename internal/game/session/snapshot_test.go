package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/game/card"
	"github.com/anisrini/literature/internal/protocol"
)

func TestSnapshot_RedactsOtherHands(t *testing.T) {
	t.Parallel()

	gs, _, _ := newStartedSession(t, 6)
	rigBlockDeal(gs)

	snap, err := gs.Snapshot(0)
	require.NoError(t, err)

	assert.Equal(t, 0, snap.MyID)
	assert.Len(t, snap.MyHand, 8)
	assert.Len(t, snap.AvailableSets, 8)
	require.Len(t, snap.Opponents, 5)
	for _, opp := range snap.Opponents {
		assert.Equal(t, 8, opp.CardsCount)
	}

	// Belt and suspenders: the serialized form must not leak card names
	// anywhere outside the viewer's own hand
	raw, err := json.Marshal(protocol.MustNewMessage(protocol.MsgGameStateUpdate, snap))
	require.NoError(t, err)
	var decoded struct {
		Payload protocol.GameStateUpdatePayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Payload.MyHand, 8)
	for _, opp := range decoded.Payload.Opponents {
		assert.Equal(t, 8, opp.CardsCount)
	}
}

func TestSnapshot_TracksClaimsAndScore(t *testing.T) {
	t.Parallel()

	gs, _, _ := newStartedSession(t, 6)
	rigBlockDeal(gs)

	lowHearts := card.SetKey{Half: card.Low, Suit: card.Hearts}
	require.NoError(t, gs.HandleDeclareSet(0, lowHearts, uniformAssignment(lowHearts, 0)))

	snap, err := gs.Snapshot(1)
	require.NoError(t, err)

	assert.Len(t, snap.AvailableSets, 7)
	assert.NotContains(t, snap.AvailableSets, "Low Hearts")
	assert.Equal(t, 1, snap.Team1Sets)
	assert.Equal(t, 0, snap.Team2Sets)
	assert.Equal(t, 1, snap.CurrentTurn)
	assert.False(t, snap.GameOver)
}

func TestSnapshot_LogTailIsBounded(t *testing.T) {
	t.Parallel()

	gs, _, _ := newStartedSession(t, 6)

	gs.inspect(func() {
		for i := 0; i < transmittedLogTail+20; i++ {
			gs.appendLog(protocol.GameLogEntry{Action: protocol.LogCardRequest, Turn: i % 6})
		}
	})

	snap, err := gs.Snapshot(0)
	require.NoError(t, err)
	assert.Len(t, snap.GameLog, transmittedLogTail)

	// The tail keeps the most recent entries
	last := snap.GameLog[len(snap.GameLog)-1]
	assert.Equal(t, (transmittedLogTail+20-1)%6, last.Turn)
}

func TestSnapshot_UnknownSeat(t *testing.T) {
	t.Parallel()

	gs, _, _ := newStartedSession(t, 6)

	_, err := gs.Snapshot(11)
	assert.ErrorIs(t, err, apperrors.ErrPlayerNotFound)
}
