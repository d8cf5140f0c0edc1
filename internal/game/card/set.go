package card

import (
	"fmt"
	"strings"
)

// Half 定义半套牌的高低段
type Half int

const (
	Low  Half = iota // 2-7
	High             // 9-A
)

var halfNames = map[Half]string{
	Low:  "Low",
	High: "High",
}

func (h Half) String() string {
	if name, ok := halfNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Half(%d)", int(h))
}

// SetKey 标识一个半套牌（half-suit），全局共 8 个
type SetKey struct {
	Half Half
	Suit Suit
}

// Name 返回客户端使用的名称，如 "Low Hearts"
func (k SetKey) Name() string {
	return fmt.Sprintf("%s %s", k.Half, k.Suit)
}

func (k SetKey) String() string {
	return k.Name()
}

// ParseSetName 解析 "Low Hearts" 形式的半套牌名称
func ParseSetName(name string) (SetKey, error) {
	halfStr, suitStr, ok := strings.Cut(name, " ")
	if !ok {
		return SetKey{}, fmt.Errorf("无效的半套牌名称: %q", name)
	}

	var half Half
	switch halfStr {
	case "Low":
		half = Low
	case "High":
		half = High
	default:
		return SetKey{}, fmt.Errorf("无效的半套牌名称: %q", name)
	}

	suit, err := ParseSuit(suitStr)
	if err != nil {
		return SetKey{}, err
	}
	return SetKey{Half: half, Suit: suit}, nil
}

// SetOf 返回一张牌所属的半套牌；全函数，48 张牌恰好划分为 8 组
func SetOf(c Card) SetKey {
	if c.Rank <= Rank7 {
		return SetKey{Half: Low, Suit: c.Suit}
	}
	return SetKey{Half: High, Suit: c.Suit}
}

// AllSets 按固定顺序返回全部 8 个半套牌
func AllSets() []SetKey {
	sets := make([]SetKey, 0, 8)
	for _, h := range []Half{Low, High} {
		for _, s := range Suits {
			sets = append(sets, SetKey{Half: h, Suit: s})
		}
	}
	return sets
}

// lowRanks 与 highRanks 各为半套牌的 6 个点数
var (
	lowRanks  = []Rank{Rank2, Rank3, Rank4, Rank5, Rank6, Rank7}
	highRanks = []Rank{Rank9, Rank10, RankJ, RankQ, RankK, RankA}
)

// Cards 返回半套牌包含的 6 张牌
func (k SetKey) Cards() []Card {
	ranks := lowRanks
	if k.Half == High {
		ranks = highRanks
	}
	cards := make([]Card, 0, 6)
	for _, r := range ranks {
		cards = append(cards, Card{Suit: k.Suit, Rank: r})
	}
	return cards
}
