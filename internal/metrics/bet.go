// internal/metrics/bet.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	betTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bet_requests_total",
			Help: "Total bet requests by game and result",
		},
		[]string{"game", "result"},
	)

	betDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bet_request_duration_ms",
			Help:    "Bet request duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		},
		[]string{"game", "result"},
	)
)

// RecordBet records business metrics for one wager.
// result should be "win", "loss", "push", "pending" or "error".
func RecordBet(game, result string, started time.Time) {
	betTotal.WithLabelValues(game, result).Inc()
	durMs := float64(time.Since(started).Milliseconds())
	betDuration.WithLabelValues(game, result).Observe(durMs)
}
