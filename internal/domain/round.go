// internal/domain/round.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Card is a playing card. Suit never affects settlement; it is carried for
// display only.
type Card struct {
	Rank string `json:"rank"` // "A", "2".."10", "J", "Q", "K"
	Suit string `json:"suit"` // "spades", "hearts", "diamonds", "clubs"
}

// Hand is an ordered sequence of cards. Its score is derived by the blackjack
// scoring function, never stored.
type Hand []Card

// RoundState tracks the lifecycle of a wager.
// Every game resolves Betting -> Settled atomically except blackjack, which
// holds an in-progress state while the player decides to hit or stand.
type RoundState string

const (
	RoundStateBetting    RoundState = "betting"
	RoundStateInProgress RoundState = "in_progress"
	RoundStateSettled    RoundState = "settled"
)

// BlackjackRound is an in-progress blackjack hand. The stake has already been
// debited when the round exists; a round that expires unplayed keeps that
// debit applied.
type BlackjackRound struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Bet       decimal.Decimal `json:"bet"`
	Player    Hand            `json:"player"`
	Dealer    Hand            `json:"dealer"`
	State     RoundState      `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewBlackjackRound creates a round in the in-progress state.
func NewBlackjackRound(userID string, bet decimal.Decimal, player, dealer Hand) *BlackjackRound {
	return &BlackjackRound{
		ID:        uuid.New().String(),
		UserID:    userID,
		Bet:       bet,
		Player:    player,
		Dealer:    dealer,
		State:     RoundStateInProgress,
		CreatedAt: time.Now().UTC(),
	}
}
