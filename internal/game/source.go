// internal/game/source.go
package game

import (
	"math/rand"
	"time"
)

// Source supplies the randomness consumed by the settlement rules.
// Abstracting it keeps every resolver deterministic under a stubbed source
// in tests; *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

// NewSource returns a time-seeded Source for production use.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
