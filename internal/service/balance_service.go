// internal/service/balance_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bethouse/internal/domain"
	"bethouse/internal/repository"
	"bethouse/internal/util"
)

// AdjustType selects the direction of a raw balance adjustment.
type AdjustType string

const (
	AdjustAdd      AdjustType = "add"
	AdjustSubtract AdjustType = "subtract"
)

// BalanceService is the single authority through which an account's balance
// changes. It guarantees the balance never goes negative and that every change
// is persisted before the call returns.
type BalanceService interface {
	CreateAccount(ctx context.Context, email, name, passwordHash string) (*domain.Account, error)
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Debit removes amount from the balance. It rejects non-positive amounts
	// with ErrInvalidAmount and stakes exceeding the balance with
	// ErrInsufficientFunds.
	Debit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error)
	// Credit adds amount to the balance unconditionally. Negative amounts are
	// rejected with ErrInvalidAmount.
	Credit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error)
	// Adjust applies the update-balance wire semantics: "add" is unconditional,
	// "subtract" clamps the result at zero instead of rejecting.
	Adjust(ctx context.Context, userID string, amount decimal.Decimal, adjustType AdjustType) (*domain.Account, error)
}

// balanceService implements the BalanceService interface.
type balanceService struct {
	accounts repository.AccountRepository
	logger   *zap.Logger
}

// NewBalanceService creates a new instance of BalanceService.
func NewBalanceService(accounts repository.AccountRepository, logger *zap.Logger) BalanceService {
	return &balanceService{accounts: accounts, logger: logger}
}

// CreateAccount stores a new account with the fixed starting bonus.
func (s *balanceService) CreateAccount(ctx context.Context, email, name, passwordHash string) (*domain.Account, error) {
	if email == "" || name == "" || passwordHash == "" {
		return nil, util.ErrInvalidInput
	}

	account := domain.NewAccount(email, name, passwordHash)
	if err := s.accounts.Create(ctx, account); err != nil {
		if util.IsError(err, util.ErrDuplicateEntry) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account created",
		zap.String("user_id", account.ID),
		zap.String("email", account.Email))
	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *balanceService) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accounts.Get(ctx, userID)
	if err != nil {
		if util.IsError(err, util.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get account %s: %w", userID, err)
	}
	return account, nil
}

// GetAccountByEmail retrieves an account through the email index.
func (s *balanceService) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if util.IsError(err, util.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return account, nil
}

// Debit removes amount from the balance, rejecting stakes the balance cannot
// cover.
func (s *balanceService) Debit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	account, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("debit: failed to persist balance for %s: %w", userID, err)
	}

	s.logger.Debug("balance debited",
		zap.String("user_id", userID),
		zap.String("amount", amount.String()),
		zap.String("balance", account.Balance.String()))
	return account, nil
}

// Credit adds amount to the balance. There is no upper bound.
func (s *balanceService) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	if amount.IsNegative() {
		return nil, util.ErrInvalidAmount
	}

	account, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	account.Balance = account.Balance.Add(amount)
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("credit: failed to persist balance for %s: %w", userID, err)
	}

	s.logger.Debug("balance credited",
		zap.String("user_id", userID),
		zap.String("amount", amount.String()),
		zap.String("balance", account.Balance.String()))
	return account, nil
}

// Adjust applies the raw update-balance contract. A subtract larger than the
// balance clamps the result at zero rather than failing.
func (s *balanceService) Adjust(ctx context.Context, userID string, amount decimal.Decimal, adjustType AdjustType) (*domain.Account, error) {
	if amount.IsNegative() {
		return nil, util.ErrInvalidAmount
	}

	switch adjustType {
	case AdjustAdd:
		return s.Credit(ctx, userID, amount)
	case AdjustSubtract:
		account, err := s.GetAccount(ctx, userID)
		if err != nil {
			return nil, err
		}
		next := account.Balance.Sub(amount)
		if next.IsNegative() {
			next = decimal.Zero
		}
		account.Balance = next
		if err := s.accounts.Save(ctx, account); err != nil {
			return nil, fmt.Errorf("adjust: failed to persist balance for %s: %w", userID, err)
		}
		return account, nil
	default:
		return nil, util.ErrInvalidInput
	}
}
