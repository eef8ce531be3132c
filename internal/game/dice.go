// internal/game/dice.go
package game

import (
	"github.com/shopspring/decimal"

	"bethouse/internal/util"
)

// DicePrediction is the direction of a dice threshold bet.
type DicePrediction string

const (
	PredictionOver  DicePrediction = "over"
	PredictionUnder DicePrediction = "under"
)

// DiceResult describes a resolved dice wager.
type DiceResult struct {
	Roll       int             `json:"roll"` // uniform integer in [1, 100]
	Won        bool            `json:"won"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"` // stake included; zero on loss
}

// DiceMultiplier returns the payout multiplier for a winning dice bet.
// The target must be strictly inside (0, 100) to keep the divisor non-zero;
// anything outside [1, 99], NaN included, is rejected with ErrInvalidParameter.
func DiceMultiplier(prediction DicePrediction, target float64) (decimal.Decimal, error) {
	// The negated form also catches NaN, which fails every comparison.
	if !(target >= 1 && target <= 99) {
		return decimal.Zero, util.ErrInvalidParameter
	}
	switch prediction {
	case PredictionOver:
		return decimal.NewFromFloat(100 / (100 - target)), nil
	case PredictionUnder:
		return decimal.NewFromFloat(100 / target), nil
	default:
		return decimal.Zero, util.ErrInvalidParameter
	}
}

// ResolveDice draws a roll and settles a dice threshold wager.
// Over wins when roll > target, under wins when roll < target; a roll exactly
// on the target loses either way.
func ResolveDice(src Source, amount decimal.Decimal, prediction DicePrediction, target float64) (*DiceResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}
	mult, err := DiceMultiplier(prediction, target)
	if err != nil {
		return nil, err
	}

	roll := src.Intn(100) + 1
	won := (prediction == PredictionOver && float64(roll) > target) ||
		(prediction == PredictionUnder && float64(roll) < target)

	res := &DiceResult{Roll: roll, Won: won, Multiplier: mult, Payout: decimal.Zero}
	if won {
		res.Payout = amount.Mul(mult)
	}
	return res, nil
}
