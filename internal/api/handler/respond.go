// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bethouse/internal/util"
)

// DefaultTimeout bounds how long a request may run.
const DefaultTimeout = 15 * time.Second

// respondWithJSON serializes payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *zap.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps application errors onto HTTP status codes.
func respondWithError(w http.ResponseWriter, logger *zap.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrInvalidParameter):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrUnauthenticated):
		statusCode = http.StatusUnauthorized
		message = "Unauthenticated"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Insufficient funds"
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrAccountNotFound),
		util.IsError(err, util.ErrRoundNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Already exists"
	default:
		logger.Error("unhandled service error", zap.Error(err))
	}

	respondWithJSON(w, logger, statusCode, map[string]string{"error": message})
}
