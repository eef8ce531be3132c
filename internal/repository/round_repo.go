// internal/repository/round_repo.go
package repository

import (
	"context"

	"bethouse/internal/domain"
)

// RoundRepository holds in-progress blackjack rounds. Rounds expire after a
// TTL; an expired round is gone and its stake stays debited.
type RoundRepository interface {
	// Save persists a round under its user and round ID.
	Save(ctx context.Context, round *domain.BlackjackRound) error
	// Get retrieves a round. Returns util.ErrRoundNotFound when absent or expired.
	Get(ctx context.Context, userID, roundID string) (*domain.BlackjackRound, error)
	// Delete removes a settled round.
	Delete(ctx context.Context, userID, roundID string) error
}
