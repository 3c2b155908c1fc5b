package sample

import (
	"math/rand/v2"
)

// Sampler draws random subsets using a seeded PCG source.
type Sampler struct {
	seed uint64
	rng  *rand.Rand
}

// New returns a Sampler seeded with seed. A zero seed picks a random one,
// which can be read back with [Sampler.Seed] to replay the draw.
func New(seed uint64) *Sampler {
	if seed == 0 {
		seed = NewSeed()
	}
	return &Sampler{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

// NewSeed returns a non-zero random seed.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// Seed returns the seed the Sampler was created with.
func (s *Sampler) Seed() uint64 { return s.seed }

// Indices returns quantity distinct indices in [0, n) chosen uniformly at
// random, in no particular order.
//
// If quantity exceeds n, all indices are returned in ascending order. If
// quantity equals n, the result is a random permutation. A non-positive
// quantity or n yields an empty slice.
func (s *Sampler) Indices(n, quantity int) []int {
	if quantity <= 0 || n <= 0 {
		return []int{}
	}
	if quantity > n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	// taken maps a drawn slot to the index logically swapped into it,
	// which keeps auxiliary space at O(quantity).
	result := make([]int, quantity)
	taken := make(map[int]int, quantity)
	remaining := n
	for k := quantity - 1; k >= 0; k-- {
		x := s.rng.IntN(remaining)
		result[k] = lookup(taken, x)
		remaining--
		taken[x] = lookup(taken, remaining)
	}
	return result
}

// Sample returns quantity distinct elements of pool chosen uniformly at random
// by s. The pool is never modified; the result is always a new slice.
//
// If quantity exceeds len(pool), a copy of pool is returned in its original
// order (see [Sampler.Indices]).
func Sample[T any](s *Sampler, pool []T, quantity int) []T {
	idx := s.Indices(len(pool), quantity)
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func lookup(taken map[int]int, i int) int {
	if v, ok := taken[i]; ok {
		return v
	}
	return i
}

// Shortfall returns how many fewer items were drawn than requested, or 0.
func Shortfall(requested, got int) int {
	return max(0, requested-got)
}
