// internal/repository/redisstore/account_redis.go
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"bethouse/internal/domain"
	"bethouse/internal/repository"
	"bethouse/internal/util"
)

func accountKey(id string) string  { return "user:" + id }
func emailKey(email string) string { return "user:email:" + email }

// AccountRepository implements repository.AccountRepository on Redis.
// Accounts live as JSON blobs under user:{id}; user:email:{email} maps an
// email to the owning account ID.
type AccountRepository struct {
	rdb *redis.Client
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(rdb *redis.Client) repository.AccountRepository {
	return &AccountRepository{rdb: rdb}
}

// Create stores a new account, claiming the email index entry first so two
// signups with the same email cannot both succeed.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	ok, err := r.rdb.SetNX(ctx, emailKey(account.Email), account.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim email index for %s: %w", account.Email, err)
	}
	if !ok {
		return util.ErrDuplicateEntry
	}

	if err := r.set(ctx, account); err != nil {
		// Roll the index claim back so the email is not orphaned.
		_ = r.rdb.Del(ctx, emailKey(account.Email)).Err()
		return err
	}
	return nil
}

// Get retrieves an account by ID.
func (r *AccountRepository) Get(ctx context.Context, id string) (*domain.Account, error) {
	raw, err := r.rdb.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", id, err)
	}
	return &account, nil
}

// GetByEmail retrieves an account through the email index.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	id, err := r.rdb.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve email %s: %w", email, err)
	}
	return r.Get(ctx, id)
}

// Save overwrites an existing account record.
func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	return r.set(ctx, account)
}

func (r *AccountRepository) set(ctx context.Context, account *domain.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode account %s: %w", account.ID, err)
	}
	if err := r.rdb.Set(ctx, accountKey(account.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store account %s: %w", account.ID, err)
	}
	return nil
}
