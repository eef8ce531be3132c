// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bethouse/internal/api/handler"
	"bethouse/internal/auth"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(accountHandler *handler.AccountHandler, gameHandler *handler.GameHandler, tokens *auth.TokenManager, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check and metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public routes
	r.Post("/signup", accountHandler.Signup)
	r.Post("/login", accountHandler.Login)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens, logger))

		r.Get("/user-profile", accountHandler.GetProfile)
		r.Post("/update-balance", accountHandler.UpdateBalance)

		r.Get("/betting-history", gameHandler.GetBettingHistory)
		r.Post("/betting-history", gameHandler.RecordBet)

		r.Route("/games", func(r chi.Router) {
			r.Post("/dice/play", gameHandler.PlayDice)
			r.Post("/roulette/play", gameHandler.PlayRoulette)
			r.Post("/slots/play", gameHandler.PlaySlots)
			r.Post("/sports/place", gameHandler.PlaceSportsBet)
			r.Post("/blackjack/deal", gameHandler.DealBlackjack)
			r.Post("/blackjack/hit", gameHandler.HitBlackjack)
			r.Post("/blackjack/stand", gameHandler.StandBlackjack)
		})
	})

	return r
}
