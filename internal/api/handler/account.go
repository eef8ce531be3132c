// internal/api/handler/account.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bethouse/internal/auth"
	"bethouse/internal/service"
	"bethouse/internal/util"
)

// AccountHandler handles signup, login, profile and raw balance updates.
type AccountHandler struct {
	balance service.BalanceService
	tokens  *auth.TokenManager
	logger  *zap.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(balance service.BalanceService, tokens *auth.TokenManager, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{balance: balance, tokens: tokens, logger: logger}
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Signup creates a new account with the starting bonus.
// POST /signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	account, err := h.balance.CreateAccount(r.Context(), req.Email, req.Name, passwordHash)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    account.Profile(),
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a bearer token.
// POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.balance.GetAccountByEmail(r.Context(), req.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}
	if err := auth.CheckPassword(account.PasswordHash, req.Password); err != nil {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	token, err := h.tokens.Issue(account.ID, account.Email)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  account.Profile(),
	})
}

// GetProfile returns the caller's account record.
// GET /user-profile
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	account, err := h.balance.GetAccount(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    account.Profile(),
	})
}

// UpdateBalanceRequest represents the request body for update-balance.
type UpdateBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"` // "add" or "subtract"
}

// UpdateBalance applies a raw balance adjustment: add is unconditional,
// subtract clamps at zero.
// POST /update-balance
func (h *AccountHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.balance.Adjust(r.Context(), userID, req.Amount, service.AdjustType(req.Type))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"success": true,
		"balance": account.Balance,
	})
}
