package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the source of randomness used for sampling, mixed-type resolution and shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// lockedRand makes a *rand.Rand safe to share between requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a concurrency-safe Rand seeded with seed.
func NewRand(seed uint64) Rand {
	return &lockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededRand returns a concurrency-safe Rand seeded from the current time.
func NewTimeSeededRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
