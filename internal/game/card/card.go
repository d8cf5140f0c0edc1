package card

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Hearts Suit = iota // 红心
	Diamonds           // 方块
	Clubs              // 梅花
	Spades             // 黑桃
)

// Suits 按固定顺序列出全部花色
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// suitNames 花色名称映射表（与浏览器客户端使用的字符串一致）
var suitNames = map[Suit]string{
	Hearts:   "Hearts",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
	Spades:   "Spades",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// ParseSuit 从字符串解析花色
func ParseSuit(name string) (Suit, error) {
	for s, n := range suitNames {
		if n == name {
			return s, nil
		}
	}
	return -1, fmt.Errorf("无法识别的花色: %q", name)
}

// Literature 不使用 8，点数分为低段 2-7 和高段 9-A
const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	_ // 8 不在游戏中
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "Jack",
	RankQ:  "Queen",
	RankK:  "King",
	RankA:  "Ace",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// ParseRank 从字符串解析点数
func ParseRank(name string) (Rank, error) {
	for r, n := range rankNames {
		if n == name {
			return r, nil
		}
	}
	return -1, fmt.Errorf("无法识别的点数: %q", name)
}

// Card 定义一张牌，按 (Suit, Rank) 判等
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Key 返回线路协议中使用的 "rank_suit" 键，如 "Jack_Hearts"
func (c Card) Key() string {
	return fmt.Sprintf("%s_%s", c.Rank, c.Suit)
}

// ParseKey 解析 "rank_suit" 键为一张牌
func ParseKey(key string) (Card, error) {
	rankStr, suitStr, ok := strings.Cut(key, "_")
	if !ok {
		return Card{}, fmt.Errorf("无效的牌编码: %q", key)
	}
	rank, err := ParseRank(rankStr)
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(suitStr)
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 创建 48 张的 Literature 牌组（每花色 2-7 与 9-A，不含 8）
func NewDeck() Deck {
	deck := make(Deck, 0, 48)
	for _, s := range Suits {
		for r := Rank2; r <= RankA; r++ {
			if _, ok := rankNames[r]; !ok {
				continue // 跳过 8
			}
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle 使用给定随机源做均匀洗牌，相同种子可复现
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
