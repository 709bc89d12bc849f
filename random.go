package faultsim

import (
	"math/rand/v2"
	"sync"
	"time"
)

/*
RandomSource is the uniform random number generator a session draws from.
Every fault decision, site selection and Pauli choice consumes draws from
the same source, so a fixed seed reproduces a run exactly.
*/
type RandomSource interface {
	// Float64 returns a pseudo-random float64 in [0.0, 1.0).
	Float64() float64

	// IntN returns a pseudo-random integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type pcgSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

/*
NewRandomSource returns a RandomSource backed by a PCG generator. Any
non-zero seed gives a reproducible sequence. Zero is reserved: it selects a
time-based seed, so a seed of 0 itself can never be replayed.
*/
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &pcgSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *pcgSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *pcgSource) IntN(n int) int {
	if n <= 0 {
		panic("faultsim: RandomSource.IntN called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
