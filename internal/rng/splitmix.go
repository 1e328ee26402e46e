// Package rng implements the deterministic SplitMix64 generator that every
// randomized scheduling operation takes explicitly.
package rng

import "math"

// SplitMix64 is a 64-bit splitmix generator. The zero value is a valid
// generator seeded with 0. It is not safe for concurrent use.
type SplitMix64 struct {
	State uint64 `json:"state"`
}

// New returns a generator seeded with seed.
func New(seed uint64) *SplitMix64 {
	return &SplitMix64{State: seed}
}

// Seed resets the generator to seed.
func (r *SplitMix64) Seed(seed uint64) {
	r.State = seed
}

// Uint64 returns the next 64 random bits.
func (r *SplitMix64) Uint64() uint64 {
	r.State += 0x9e3779b97f4a7c15
	z := r.State
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float returns a uniform float between low and high.
func (r *SplitMix64) Float(low, high float64) float64 {
	frac := float64(r.Uint64()) / math.Exp2(64)
	return frac*(high-low) + low
}

// Intn returns a uniform int in [0, n). It panics if n <= 0.
func (r *SplitMix64) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(r.Uint64() % uint64(n))
}

// Clone returns an independent copy of the generator state.
func (r *SplitMix64) Clone() *SplitMix64 {
	c := *r
	return &c
}
