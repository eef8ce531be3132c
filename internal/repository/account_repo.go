// internal/repository/account_repo.go
package repository

import (
	"context"

	"bethouse/internal/domain"
)

// AccountRepository defines the key-value operations on account records.
// The backing store maps account IDs to full records; an email index supports
// login lookups.
type AccountRepository interface {
	// Create stores a new account and its email index entry.
	// Returns util.ErrDuplicateEntry when the email is already registered.
	Create(ctx context.Context, account *domain.Account) error
	// Get retrieves an account by ID. Returns util.ErrAccountNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Account, error)
	// GetByEmail retrieves an account through the email index.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Save overwrites an existing account record.
	Save(ctx context.Context, account *domain.Account) error
}
