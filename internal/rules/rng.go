package rules

import (
	"math/rand"
	"time"
)

// RNG is the random source for all rolls. *math/rand.Rand satisfies it;
// tests inject fixed sequences to hit exact threshold boundaries.
type RNG interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewRNG returns a time-seeded source for production use. There is no
// seeding contract; determinism is a test concern only.
func NewRNG() RNG {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
