package vision

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the generator draws on. *rand.Rand from
// math/rand/v2 satisfies it, which lets tests pass a seeded source.
type Rand interface {
	IntN(n int) int
	Perm(n int) []int
}

// globalRand uses the package-level math/rand/v2 functions, which are safe
// for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Perm(n int) []int { return rand.Perm(n) }

// lockedRand serialises an injected source so one engine can be shared by
// several workers.
type lockedRand struct {
	mu  sync.Mutex
	src Rand
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

func (r *lockedRand) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Perm(n)
}

// pick returns a random element of pool, or "" for an empty pool.
func pick(r Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[r.IntN(len(pool))]
}
