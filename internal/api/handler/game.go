// internal/api/handler/game.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bethouse/internal/api/types"
	"bethouse/internal/auth"
	"bethouse/internal/domain"
	"bethouse/internal/game"
	"bethouse/internal/service"
	"bethouse/internal/util"
)

// GameHandler handles wager placement and betting history.
type GameHandler struct {
	games  service.GameService
	logger *zap.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(games service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{games: games, logger: logger}
}

// DicePlayRequest represents the request body for a dice wager.
type DicePlayRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Prediction string          `json:"prediction"` // "over" or "under"
	Target     float64         `json:"target"`     // real in [1, 99]
}

// PlayDice settles a dice threshold wager.
// POST /games/dice/play
func (h *GameHandler) PlayDice(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req DicePlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	play, err := h.games.PlayDice(r.Context(), userID, req.Amount, game.DicePrediction(req.Prediction), req.Target)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, play)
}

// RoulettePlayRequest represents the request body for a roulette round.
type RoulettePlayRequest struct {
	Stakes []game.RouletteStake `json:"stakes"`
}

// PlayRoulette settles a round of simultaneous roulette stakes.
// POST /games/roulette/play
func (h *GameHandler) PlayRoulette(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req RoulettePlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	play, err := h.games.PlayRoulette(r.Context(), userID, req.Stakes)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, play)
}

// SlotsPlayRequest represents the request body for a slots spin.
type SlotsPlayRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PlaySlots settles a slots spin.
// POST /games/slots/play
func (h *GameHandler) PlaySlots(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req SlotsPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	play, err := h.games.PlaySlots(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, play)
}

// SportsPlaceRequest represents the request body for a fixed-odds bet.
type SportsPlaceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Odds   decimal.Decimal `json:"odds"` // decimal odds, must be > 1
}

// PlaceSportsBet debits a fixed-odds stake; the match settles externally.
// POST /games/sports/place
func (h *GameHandler) PlaceSportsBet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req SportsPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	play, err := h.games.PlaceSportsBet(r.Context(), userID, req.Amount, req.Odds)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, play)
}

// BlackjackDealRequest represents the request body for opening a round.
type BlackjackDealRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// DealBlackjack debits the stake and deals the starting hands.
// POST /games/blackjack/deal
func (h *GameHandler) DealBlackjack(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req BlackjackDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	play, err := h.games.DealBlackjack(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, play)
}

// BlackjackMoveRequest identifies the round a hit or stand applies to.
type BlackjackMoveRequest struct {
	RoundID string `json:"round_id"`
}

// HitBlackjack draws one more card for the player.
// POST /games/blackjack/hit
func (h *GameHandler) HitBlackjack(w http.ResponseWriter, r *http.Request) {
	h.blackjackMove(w, r, h.games.HitBlackjack)
}

// StandBlackjack ends the player's turn and settles the round.
// POST /games/blackjack/stand
func (h *GameHandler) StandBlackjack(w http.ResponseWriter, r *http.Request) {
	h.blackjackMove(w, r, h.games.StandBlackjack)
}

func (h *GameHandler) blackjackMove(w http.ResponseWriter, r *http.Request, move func(ctx context.Context, userID, roundID string) (*service.BlackjackPlay, error)) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req BlackjackMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoundID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	play, err := move(r.Context(), userID, req.RoundID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, play)
}

// GetBettingHistory returns the caller's paginated betting history.
// GET /betting-history
func (h *GameHandler) GetBettingHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10 // Default limit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}

	records, totalCount, err := h.games.GetBettingHistory(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[domain.BetRecord]{
		Data:       records,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// BetRecordRequest represents the request body for saving a history entry.
type BetRecordRequest struct {
	Game      string          `json:"game"`
	BetAmount decimal.Decimal `json:"betAmount"`
	Result    string          `json:"result"`
	Payout    decimal.Decimal `json:"payout"`
}

// RecordBet saves an externally settled bet into the history log.
// POST /betting-history
func (h *GameHandler) RecordBet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req BetRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Game == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	rec, err := h.games.RecordBet(r.Context(), userID, domain.Game(req.Game), req.BetAmount, domain.BetResult(req.Result), req.Payout)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"success": true,
		"bet":     rec,
	})
}
