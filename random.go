package main

import (
	"math/rand/v2"
	"time"
)

// Rand is the composer's only source of randomness.
type Rand interface {
	Float64() float64
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func chance(r Rand, p float64) bool {
	return r.Float64() < p
}
