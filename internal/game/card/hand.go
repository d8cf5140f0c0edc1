package card

import "sort"

// Hand 玩家手牌（私有牌集合，只由所属会话修改）
type Hand []Card

// Add 添加一张牌
func (h *Hand) Add(c Card) {
	*h = append(*h, c)
}

// Remove 移除指定的牌，返回是否找到
func (h *Hand) Remove(c Card) bool {
	for i, cur := range *h {
		if cur == c {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}
	return false
}

// Has 检查是否持有指定的牌
func (h Hand) Has(c Card) bool {
	for _, cur := range h {
		if cur == c {
			return true
		}
	}
	return false
}

// HasRank 检查是否持有指定点数的任意牌
func (h Hand) HasRank(r Rank) bool {
	for _, cur := range h {
		if cur.Rank == r {
			return true
		}
	}
	return false
}

// HasSetCard 检查是否持有指定半套牌中的任意牌
func (h Hand) HasSetCard(k SetKey) bool {
	for _, cur := range h {
		if SetOf(cur) == k {
			return true
		}
	}
	return false
}

// RemoveSet 移除属于指定半套牌的所有牌，返回移除数量
func (h *Hand) RemoveSet(k SetKey) int {
	kept := (*h)[:0]
	removed := 0
	for _, cur := range *h {
		if SetOf(cur) == k {
			removed++
			continue
		}
		kept = append(kept, cur)
	}
	*h = kept
	return removed
}

// Sorted 返回按花色、点数排序的副本（用于展示）
func (h Hand) Sorted() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Suit != out[j].Suit {
			return out[i].Suit < out[j].Suit
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}
