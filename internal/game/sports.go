// internal/game/sports.go
package game

import (
	"github.com/shopspring/decimal"

	"bethouse/internal/util"
)

var oddsFloor = decimal.NewFromInt(1)

// ValidateOdds checks a fixed-odds selection. Decimal odds must be strictly
// greater than 1 (odds of exactly 1 would make the bet a no-op).
func ValidateOdds(odds decimal.Decimal) error {
	if odds.LessThanOrEqual(oddsFloor) {
		return util.ErrInvalidParameter
	}
	return nil
}

// ResolveSports settles a fixed-odds sports wager once the match result is
// known. The match outcome itself arrives externally; placement only records
// the debit.
func ResolveSports(amount, odds decimal.Decimal, won bool) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, util.ErrInvalidAmount
	}
	if err := ValidateOdds(odds); err != nil {
		return decimal.Zero, err
	}
	if !won {
		return decimal.Zero, nil
	}
	return amount.Mul(odds), nil
}
