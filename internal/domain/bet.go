// internal/domain/bet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game identifies one of the supported game types.
type Game string

const (
	GameDice      Game = "dice"
	GameBlackjack Game = "blackjack"
	GameRoulette  Game = "roulette"
	GameSlots     Game = "slots"
	GameSports    Game = "sports"
)

// BetResult is the settled outcome of a wager, as recorded in betting history.
type BetResult string

const (
	BetResultWin     BetResult = "win"
	BetResultLoss    BetResult = "loss"
	BetResultPush    BetResult = "push"
	BetResultPending BetResult = "pending" // sports bets settled externally
)

// BetRecord is a write-mostly audit entry for a settled (or placed) wager.
// Nothing in the settlement path reads it back; it exists for history endpoints.
type BetRecord struct {
	ID        int64           `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Game      Game            `db:"game" json:"game"`
	BetAmount decimal.Decimal `db:"bet_amount" json:"bet_amount"` // NUMERIC(20, 4) in DB
	Result    BetResult       `db:"result" json:"result"`
	Payout    decimal.Decimal `db:"payout" json:"payout"` // total returned to balance, stake included
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewBetRecord creates a new BetRecord instance.
func NewBetRecord(userID string, game Game, betAmount decimal.Decimal, result BetResult, payout decimal.Decimal) *BetRecord {
	return &BetRecord{
		UserID:    userID,
		Game:      game,
		BetAmount: betAmount,
		Result:    result,
		Payout:    payout,
		CreatedAt: time.Now().UTC(),
	}
}
