// internal/game/slots.go
package game

import (
	"github.com/shopspring/decimal"

	"bethouse/internal/util"
)

// SlotSymbol is one of the five reel symbols and its three-of-a-kind
// multiplier.
type SlotSymbol struct {
	Name       string `json:"name"`
	Multiplier int64  `json:"multiplier"`
}

// SlotSymbols is the fixed symbol set; every reel draws uniformly from it.
var SlotSymbols = []SlotSymbol{
	{Name: "Cherry", Multiplier: 2},
	{Name: "Star", Multiplier: 3},
	{Name: "Zap", Multiplier: 5},
	{Name: "Gem", Multiplier: 10},
	{Name: "Crown", Multiplier: 20},
}

var pairMultiplier = decimal.RequireFromString("1.5")

// SlotsResult describes one settled spin.
type SlotsResult struct {
	Reels  [3]SlotSymbol   `json:"reels"`
	Won    bool            `json:"won"`
	Payout decimal.Decimal `json:"payout"`
}

// ResolveSlots spins three independent reels. Three matching symbols pay the
// symbol's multiplier, any pair pays 1.5x, no match pays nothing.
func ResolveSlots(src Source, amount decimal.Decimal) (*SlotsResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	var idx [3]int
	var reels [3]SlotSymbol
	for i := range idx {
		idx[i] = src.Intn(len(SlotSymbols))
		reels[i] = SlotSymbols[idx[i]]
	}

	payout := decimal.Zero
	switch {
	case idx[0] == idx[1] && idx[1] == idx[2]:
		payout = amount.Mul(decimal.NewFromInt(reels[0].Multiplier))
	case idx[0] == idx[1] || idx[1] == idx[2] || idx[0] == idx[2]:
		payout = amount.Mul(pairMultiplier)
	}

	return &SlotsResult{
		Reels:  reels,
		Won:    payout.GreaterThan(decimal.Zero),
		Payout: payout,
	}, nil
}
