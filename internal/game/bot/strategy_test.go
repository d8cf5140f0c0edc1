package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anisrini/literature/internal/game/card"
)

func newTestStrategy() *RandomStrategy {
	return NewRandomStrategy(rand.New(rand.NewPCG(42, 0)))
}

func handOf(cards ...card.Card) card.Hand {
	var h card.Hand
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

func lowHeartsCards() []card.Card {
	return card.SetKey{Half: card.Low, Suit: card.Hearts}.Cards()
}

func TestDecide_DeclaresCompleteSet(t *testing.T) {
	t.Parallel()

	v := View{
		Seat: 2,
		Team: 0,
		Hand: handOf(lowHeartsCards()...),
		Players: []Seatmate{
			{ID: 1, Team: 1, CardCount: 8, Online: true},
			{ID: 3, Team: 1, CardCount: 8, Online: true},
		},
		ClaimedSets: map[card.SetKey]bool{},
	}

	action := newTestStrategy().Decide(v)
	require.NotNil(t, action.Declare)
	assert.Nil(t, action.Request)
	assert.Equal(t, card.SetKey{Half: card.Low, Suit: card.Hearts}, action.Declare.Set)
	require.Len(t, action.Declare.Assignment, 6)
	for _, seat := range action.Declare.Assignment {
		assert.Equal(t, 2, seat)
	}
}

func TestDecide_SkipsClaimedSetForDeclaration(t *testing.T) {
	t.Parallel()

	// 手里还攥着一个已被声明过的半套牌是不可能的正常局面，
	// 但策略不应因此再次声明它
	v := View{
		Seat: 0,
		Team: 0,
		Hand: handOf(lowHeartsCards()...),
		Players: []Seatmate{
			{ID: 1, Team: 1, CardCount: 8, Online: true},
		},
		ClaimedSets: map[card.SetKey]bool{
			{Half: card.Low, Suit: card.Hearts}: true,
		},
	}

	action := newTestStrategy().Decide(v)
	assert.Nil(t, action.Declare)
}

func TestDecide_RequestIsLegal(t *testing.T) {
	t.Parallel()

	hand := handOf(
		card.Card{Suit: card.Hearts, Rank: card.Rank2},
		card.Card{Suit: card.Spades, Rank: card.RankK},
	)
	v := View{
		Seat: 0,
		Team: 0,
		Hand: hand,
		Players: []Seatmate{
			{ID: 1, Team: 1, CardCount: 8, Online: true},
			{ID: 2, Team: 0, CardCount: 8, Online: true},  // 队友，不可作为目标
			{ID: 3, Team: 1, CardCount: 8, Online: false}, // 离线，不可作为目标
			{ID: 4, Team: 1, CardCount: 0, Online: true},  // 空手，不可作为目标
			{ID: 5, Team: 0, CardCount: 8, Online: true},
		},
		ClaimedSets: map[card.SetKey]bool{},
	}

	s := newTestStrategy()
	for i := 0; i < 50; i++ {
		action := s.Decide(v)
		require.NotNil(t, action.Request)
		req := action.Request

		assert.Equal(t, 1, req.TargetID)
		assert.False(t, hand.Has(req.Card), "must not request a held card")
		assert.True(t, hand.HasRank(req.Card.Rank), "must hold a card of the requested rank")
	}
}

func TestDecide_NeverRequestsFromClaimedSet(t *testing.T) {
	t.Parallel()

	// 只持有 2♥，且所有低段半套牌都已声明：没有合法候选牌
	claimed := map[card.SetKey]bool{}
	for _, suit := range card.Suits {
		claimed[card.SetKey{Half: card.Low, Suit: suit}] = true
	}
	v := View{
		Seat: 0,
		Team: 0,
		Hand: handOf(card.Card{Suit: card.Hearts, Rank: card.Rank2}),
		Players: []Seatmate{
			{ID: 1, Team: 1, CardCount: 8, Online: true},
		},
		ClaimedSets: claimed,
	}

	action := newTestStrategy().Decide(v)
	assert.Nil(t, action.Request)
	assert.Nil(t, action.Declare)
}

func TestDecide_NoTargetsOrEmptyHand(t *testing.T) {
	t.Parallel()

	s := newTestStrategy()

	noTargets := View{
		Seat: 0,
		Team: 0,
		Hand: handOf(card.Card{Suit: card.Hearts, Rank: card.Rank2}),
		Players: []Seatmate{
			{ID: 2, Team: 0, CardCount: 8, Online: true},
		},
		ClaimedSets: map[card.SetKey]bool{},
	}
	assert.Equal(t, Action{}, s.Decide(noTargets))

	emptyHand := View{
		Seat: 0,
		Team: 0,
		Hand: card.Hand{},
		Players: []Seatmate{
			{ID: 1, Team: 1, CardCount: 8, Online: true},
		},
		ClaimedSets: map[card.SetKey]bool{},
	}
	assert.Equal(t, Action{}, s.Decide(emptyHand))
}
