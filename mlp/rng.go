// SPDX-License-Identifier: MIT
// Package mlp - random source plumbing.
//
// Goals:
//   - Determinism: same seed ⇒ identical weights and batch order.
//   - Injection: every Network owns its Source; there is no package-level
//     random state and no time-based seeding.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. A Network uses its Source only from
//     the goroutine running Fit; gradient workers never draw numbers.
package mlp

import "math/rand"

// defaultSeed is used when callers pass seed==0.
const defaultSeed int64 = 1

// Source is the random generator consumed by weight initialization and batch
// shuffling. *math/rand.Rand satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard normal value.
	NormFloat64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewSource returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ a fixed default seed; otherwise the seed verbatim.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// shuffleInts performs an in-place Fisher–Yates shuffle of a using src.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleInts(a []int, src Source) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = src.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// identity returns 0..n-1.
func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}
