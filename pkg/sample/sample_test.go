package sample

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSampleDistinctFromPool(t *testing.T) {
	pool := []string{"a.md", "b.md", "c.md", "d.md", "e.md", "f.md", "g.md"}

	for q := 0; q <= len(pool); q++ {
		for seed := uint64(1); seed <= 25; seed++ {
			got := Sample(New(seed), pool, q)
			if len(got) != q {
				t.Fatalf("Sample(q=%d, seed=%d) len = %d, want %d", q, seed, len(got), q)
			}
			seen := make(map[string]bool, len(got))
			for _, v := range got {
				if !slices.Contains(pool, v) {
					t.Errorf("Sample returned %q which is not in pool", v)
				}
				if seen[v] {
					t.Errorf("Sample(q=%d, seed=%d) returned duplicate %q", q, seed, v)
				}
				seen[v] = true
			}
		}
	}
}

func TestSampleOverCapacityReturnsPoolInOrder(t *testing.T) {
	pool := []string{"c.md", "a.md", "b.md"}

	got := Sample(New(7), pool, 10)
	if diff := cmp.Diff(pool, got); diff != "" {
		t.Errorf("Sample over capacity mismatch (-want +got):\n%s", diff)
	}

	// The result must not alias the pool.
	got[0] = "changed"
	if pool[0] != "c.md" {
		t.Error("Sample result aliases the input pool")
	}
}

func TestSampleDoesNotMutatePool(t *testing.T) {
	pool := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	orig := slices.Clone(pool)

	_ = Sample(New(3), pool, 4)
	_ = Sample(New(3), pool, len(pool))

	if diff := cmp.Diff(orig, pool); diff != "" {
		t.Errorf("pool mutated (-want +got):\n%s", diff)
	}
}

func TestSampleEmpty(t *testing.T) {
	tests := []struct {
		name     string
		pool     []string
		quantity int
	}{
		{"EmptyPool", nil, 3},
		{"ZeroQuantity", []string{"a"}, 0},
		{"NegativeQuantity", []string{"a"}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(New(1), tt.pool, tt.quantity)
			if got == nil {
				t.Fatal("Sample returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("len = %d, want 0", len(got))
			}
		})
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	pool := make([]int, 100)
	for i := range pool {
		pool[i] = i
	}

	a := Sample(New(42), pool, 10)
	b := Sample(New(42), pool, 10)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different samples (-first +second):\n%s", diff)
	}
}

func TestSampleFullPermutation(t *testing.T) {
	pool := []int{0, 1, 2, 3, 4}

	got := Sample(New(11), pool, len(pool))
	slices.Sort(got)
	if diff := cmp.Diff(pool, got); diff != "" {
		t.Errorf("full draw is not a permutation (-want +got):\n%s", diff)
	}
}

func TestIndicesCoverage(t *testing.T) {
	// Every index should be drawable: over many seeds, single draws from a
	// small range must hit all values.
	const n = 6
	hits := make([]int, n)
	for seed := uint64(1); seed <= 600; seed++ {
		idx := New(seed).Indices(n, 1)
		hits[idx[0]]++
	}
	for i, h := range hits {
		if h == 0 {
			t.Errorf("index %d never drawn", i)
		}
	}
}

func TestNewZeroSeed(t *testing.T) {
	s := New(0)
	if s.Seed() == 0 {
		t.Error("New(0) should pick a non-zero seed")
	}

	replay := New(s.Seed())
	pool := []string{"a", "b", "c", "d", "e", "f"}
	if diff := cmp.Diff(Sample(s, pool, 3), Sample(replay, pool, 3)); diff != "" {
		t.Errorf("replaying seed gave a different draw (-first +replay):\n%s", diff)
	}
}

func TestShortfall(t *testing.T) {
	tests := []struct {
		requested, got, want int
	}{
		{5, 5, 0},
		{5, 3, 2},
		{0, 0, 0},
		{2, 4, 0},
	}
	for _, tt := range tests {
		if got := Shortfall(tt.requested, tt.got); got != tt.want {
			t.Errorf("Shortfall(%d, %d) = %d, want %d", tt.requested, tt.got, got, tt.want)
		}
	}
}
