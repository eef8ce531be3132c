// internal/game/source_test.go
package game

// stubSource replays a fixed sequence of draws so settlement rules can be
// tested deterministically.
type stubSource struct {
	seq []int
	i   int
}

func (s *stubSource) Intn(n int) int {
	v := s.seq[s.i%len(s.seq)]
	s.i++
	return v % n
}
