package coach

import "math/rand/v2"

// Source supplies the random draws the engine needs. Implementations must be
// safe for concurrent use.
type Source interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
	// Perm returns a uniform permutation of [0, n).
	Perm(n int) []int
}

// SystemSource draws from the math/rand/v2 top-level generator, which is
// randomly seeded and goroutine-safe.
type SystemSource struct{}

func (SystemSource) IntN(n int) int { return rand.IntN(n) }

func (SystemSource) Float64() float64 { return rand.Float64() }

func (SystemSource) Perm(n int) []int { return rand.Perm(n) }
