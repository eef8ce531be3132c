// internal/repository/postgres/bet_record_pg.go
package postgres

import (
	"context"
	"fmt"

	"bethouse/internal/domain"
	"bethouse/internal/repository"

	"github.com/jmoiron/sqlx"
)

// BetRecordRepository implements repository.BetRecordRepository for PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE bet_records (
//	    id         BIGSERIAL PRIMARY KEY,
//	    user_id    TEXT NOT NULL,
//	    game       TEXT NOT NULL,
//	    bet_amount NUMERIC(20, 4) NOT NULL,
//	    result     TEXT NOT NULL,
//	    payout     NUMERIC(20, 4) NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type BetRecordRepository struct{}

// NewBetRecordRepository creates a new BetRecordRepository.
func NewBetRecordRepository(db *sqlx.DB) repository.BetRecordRepository {
	return &BetRecordRepository{}
}

// CreateBetRecord inserts a new audit entry using the provided DBExecutor.
func (r *BetRecordRepository) CreateBetRecord(ctx context.Context, q repository.DBExecutor, record *domain.BetRecord) error {
	query := `INSERT INTO bet_records (user_id, game, bet_amount, result, payout, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		record.UserID,
		record.Game,
		record.BetAmount,
		record.Result,
		record.Payout,
		record.CreatedAt,
	).Scan(&record.ID)

	if err != nil {
		return fmt.Errorf("failed to create bet record: %w", err)
	}
	return nil
}

// GetBetRecordsByUserID retrieves a paginated betting history for one user.
// It performs two queries: one for the data and one for the total count.
func (r *BetRecordRepository) GetBetRecordsByUserID(ctx context.Context, q repository.DBExecutor, userID string, limit, offset int) ([]domain.BetRecord, int64, error) {
	records := []domain.BetRecord{}

	query := `
		SELECT id, user_id, game, bet_amount, result, payout, created_at
		FROM bet_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := q.SelectContext(ctx, &records, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch bet records for user %s: %w", userID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM bet_records WHERE user_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total bet record count for user %s: %w", userID, err)
	}

	return records, totalCount, nil
}
