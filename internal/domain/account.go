// internal/domain/account.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// StartingBalance is the fixed bonus credited to every new account on signup.
var StartingBalance = decimal.NewFromInt(1000)

// Account represents a player account and its balance.
// Invariant: Balance is never negative; it is mutated only through the
// balance service.
type Account struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"` // Current balance, stored as a decimal string
	PasswordHash string          `json:"password_hash,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewAccount creates a new Account with the signup bonus applied.
func NewAccount(email, name, passwordHash string) *Account {
	return &Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Balance:      StartingBalance,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// Profile returns a copy of the account safe to return to the caller
// (password hash stripped).
func (a *Account) Profile() Account {
	p := *a
	p.PasswordHash = ""
	return p
}
