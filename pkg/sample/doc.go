// Package sample draws random subsets from a pool of candidates.
//
// # Overview
//
// A [Sampler] picks a fixed number of distinct elements from a slice without
// replacement. It runs a partial Fisher-Yates shuffle that records swapped
// indices in a small map instead of copying the pool, so drawing k elements
// from n costs O(k) time and memory regardless of n:
//
//	s := sample.New(seed)
//	picked := sample.Sample(s, paths, 5)
//	if missing := sample.Shortfall(5, len(picked)); missing > 0 {
//	    // fewer candidates than requested
//	}
//
// # Edge Cases
//
// When more elements are requested than the pool holds, [Sample]
// returns a copy of the whole pool in its original order. It is not shuffled.
// Callers compare the result length against the request (see [Shortfall]) to
// detect the reduced count and warn the user.
//
// # Reproducibility
//
// The seed fully determines the draw: the same seed, pool and quantity always
// yield the same result. A Sampler is not safe for concurrent use; create one
// per invocation.
package sample
