// internal/repository/redisstore/round_redis.go
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bethouse/internal/domain"
	"bethouse/internal/repository"
	"bethouse/internal/util"
)

// RoundTTL bounds how long an unplayed blackjack round survives. An expired
// round is abandoned: the stake was debited at deal time and is not refunded.
const RoundTTL = 30 * time.Minute

func roundKey(userID, roundID string) string {
	return "round:" + userID + ":" + roundID
}

// RoundRepository implements repository.RoundRepository on Redis.
type RoundRepository struct {
	rdb *redis.Client
}

// NewRoundRepository creates a new RoundRepository.
func NewRoundRepository(rdb *redis.Client) repository.RoundRepository {
	return &RoundRepository{rdb: rdb}
}

// Save persists a round with the abandonment TTL.
func (r *RoundRepository) Save(ctx context.Context, round *domain.BlackjackRound) error {
	raw, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("failed to encode round %s: %w", round.ID, err)
	}
	if err := r.rdb.Set(ctx, roundKey(round.UserID, round.ID), raw, RoundTTL).Err(); err != nil {
		return fmt.Errorf("failed to store round %s: %w", round.ID, err)
	}
	return nil
}

// Get retrieves a round by user and round ID.
func (r *RoundRepository) Get(ctx context.Context, userID, roundID string) (*domain.BlackjackRound, error) {
	raw, err := r.rdb.Get(ctx, roundKey(userID, roundID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, util.ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round %s: %w", roundID, err)
	}

	var round domain.BlackjackRound
	if err := json.Unmarshal(raw, &round); err != nil {
		return nil, fmt.Errorf("failed to decode round %s: %w", roundID, err)
	}
	return &round, nil
}

// Delete removes a settled round.
func (r *RoundRepository) Delete(ctx context.Context, userID, roundID string) error {
	if err := r.rdb.Del(ctx, roundKey(userID, roundID)).Err(); err != nil {
		return fmt.Errorf("failed to delete round %s: %w", roundID, err)
	}
	return nil
}
