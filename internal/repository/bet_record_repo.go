// internal/repository/bet_record_repo.go
package repository

import (
	"context"

	"bethouse/internal/domain"
)

// BetRecordRepository defines the interface for betting-history data operations.
type BetRecordRepository interface {
	// CreateBetRecord appends an audit entry using the provided DBExecutor.
	CreateBetRecord(ctx context.Context, q DBExecutor, record *domain.BetRecord) error
	// GetBetRecordsByUserID retrieves betting history for one user, newest first,
	// using the provided DBExecutor.
	GetBetRecordsByUserID(ctx context.Context, q DBExecutor, userID string, limit, offset int) ([]domain.BetRecord, int64, error)
}
