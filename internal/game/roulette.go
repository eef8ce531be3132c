// internal/game/roulette.go
package game

import (
	"github.com/shopspring/decimal"

	"bethouse/internal/util"
)

// RouletteBetType is one of the supported stake kinds on a European wheel.
type RouletteBetType string

const (
	RouletteNumber RouletteBetType = "number"
	RouletteColor  RouletteBetType = "color"
	RouletteEven   RouletteBetType = "even"
	RouletteOdd    RouletteBetType = "odd"
	RouletteLow    RouletteBetType = "low"  // 1-18
	RouletteHigh   RouletteBetType = "high" // 19-36
)

// Standard European color wheel assignment; 0 is green and satisfies no
// outside bet.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true,
	18: true, 19: true, 21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// ColorOf returns "green" for 0 and "red" or "black" for 1-36.
func ColorOf(n int) string {
	switch {
	case n == 0:
		return "green"
	case redNumbers[n]:
		return "red"
	default:
		return "black"
	}
}

// RouletteStake is one independent stake within a betting round.
type RouletteStake struct {
	Type   RouletteBetType `json:"type"`
	Number int             `json:"number,omitempty"` // for number bets, 0-36
	Color  string          `json:"color,omitempty"`  // for color bets, "red" or "black"
	Amount decimal.Decimal `json:"amount"`
}

// RouletteResult describes a settled betting round.
type RouletteResult struct {
	Winning     int             `json:"winning"` // drawn pocket, 0-36
	Color       string          `json:"color"`
	TotalStaked decimal.Decimal `json:"total_staked"`
	TotalPayout decimal.Decimal `json:"total_payout"`
}

// profit multipliers, excluding the returned stake
var roulettePayouts = map[RouletteBetType]int64{
	RouletteNumber: 35,
	RouletteColor:  1,
	RouletteEven:   1,
	RouletteOdd:    1,
	RouletteLow:    1,
	RouletteHigh:   1,
}

// ValidateRouletteStake checks one stake's amount and parameters.
func ValidateRouletteStake(s RouletteStake) error {
	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidAmount
	}
	switch s.Type {
	case RouletteNumber:
		if s.Number < 0 || s.Number > 36 {
			return util.ErrInvalidParameter
		}
	case RouletteColor:
		if s.Color != "red" && s.Color != "black" {
			return util.ErrInvalidParameter
		}
	case RouletteEven, RouletteOdd, RouletteLow, RouletteHigh:
		// no parameter
	default:
		return util.ErrInvalidParameter
	}
	return nil
}

func stakeWins(s RouletteStake, winning int) bool {
	if winning == 0 {
		// House number: only a straight stake on 0 can win.
		return s.Type == RouletteNumber && s.Number == 0
	}
	switch s.Type {
	case RouletteNumber:
		return s.Number == winning
	case RouletteColor:
		return ColorOf(winning) == s.Color
	case RouletteEven:
		return winning%2 == 0
	case RouletteOdd:
		return winning%2 == 1
	case RouletteLow:
		return winning >= 1 && winning <= 18
	case RouletteHigh:
		return winning >= 19 && winning <= 36
	}
	return false
}

// ResolveRoulette draws one winning pocket shared by every stake in the round
// and sums the payouts. A winning stake pays amount * (multiplier + 1), stake
// included; losing stakes pay nothing.
func ResolveRoulette(src Source, stakes []RouletteStake) (*RouletteResult, error) {
	if len(stakes) == 0 {
		return nil, util.ErrInvalidInput
	}

	total := decimal.Zero
	for _, s := range stakes {
		if err := ValidateRouletteStake(s); err != nil {
			return nil, err
		}
		total = total.Add(s.Amount)
	}

	winning := src.Intn(37)
	payout := decimal.Zero
	for _, s := range stakes {
		if stakeWins(s, winning) {
			mult := decimal.NewFromInt(roulettePayouts[s.Type] + 1)
			payout = payout.Add(s.Amount.Mul(mult))
		}
	}

	return &RouletteResult{
		Winning:     winning,
		Color:       ColorOf(winning),
		TotalStaked: total,
		TotalPayout: payout,
	}, nil
}
