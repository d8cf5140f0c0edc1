package bot

import (
	"math/rand/v2"

	"github.com/anisrini/literature/internal/game/card"
)

// Seatmate 机器人视角下的其他玩家（不含手牌内容）
type Seatmate struct {
	ID        int
	Team      int
	CardCount int
	Online    bool
}

// View 机器人决策时可见的信息，由会话在其串行队列上构建
// 机器人只能看到自己的手牌，与人类玩家信息对称
type View struct {
	Seat        int
	Team        int
	Hand        card.Hand
	Players     []Seatmate
	ClaimedSets map[card.SetKey]bool
}

// RequestAction 要牌动作
type RequestAction struct {
	TargetID int
	Card     card.Card
}

// DeclareAction 声明动作
type DeclareAction struct {
	Set        card.SetKey
	Assignment map[card.Card]int
}

// Action 机器人的决策结果，至多一个字段非空；全空表示无可行动作
type Action struct {
	Request *RequestAction
	Declare *DeclareAction
}

// Strategy 机器人决策钩子
// 轮到机器人时由会话调用，返回的动作仍会经过完整的合法性校验
type Strategy interface {
	Decide(v View) Action
}

// RandomStrategy 随机策略：
// 手握整个半套牌时直接声明，否则随机挑一个合法的要牌动作
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy 创建随机策略
func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) Decide(v View) Action {
	// 已集齐的半套牌优先声明
	if set, ok := s.findCompleteSet(v); ok {
		assignment := make(map[card.Card]int, 6)
		for _, c := range set.Cards() {
			assignment[c] = v.Seat
		}
		return Action{Declare: &DeclareAction{Set: set, Assignment: assignment}}
	}

	req := s.pickRequest(v)
	if req == nil {
		return Action{}
	}
	return Action{Request: req}
}

// findCompleteSet 查找自己手中已集齐 6 张的未声明半套牌
func (s *RandomStrategy) findCompleteSet(v View) (card.SetKey, bool) {
	counts := make(map[card.SetKey]int)
	for _, c := range v.Hand {
		counts[card.SetOf(c)]++
	}
	for set, n := range counts {
		if n == 6 && !v.ClaimedSets[set] {
			return set, true
		}
	}
	return card.SetKey{}, false
}

// pickRequest 随机挑选一个合法的要牌动作：
// 从手牌随机选一张未声明半套牌中的牌，向随机的对方在线玩家索要同段中自己缺少的一张
func (s *RandomStrategy) pickRequest(v View) *RequestAction {
	var targets []int
	for _, p := range v.Players {
		if p.Team != v.Team && p.Online && p.CardCount > 0 {
			targets = append(targets, p.ID)
		}
	}
	if len(targets) == 0 || len(v.Hand) == 0 {
		return nil
	}

	// 候选：同点数、不在自己手里、且所属半套牌未被声明的牌
	var candidates []card.Card
	for _, held := range v.Hand {
		for _, suit := range card.Suits {
			want := card.Card{Suit: suit, Rank: held.Rank}
			if v.Hand.Has(want) || v.ClaimedSets[card.SetOf(want)] {
				continue
			}
			candidates = append(candidates, want)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	return &RequestAction{
		TargetID: targets[s.rng.IntN(len(targets))],
		Card:     candidates[s.rng.IntN(len(candidates))],
	}
}
