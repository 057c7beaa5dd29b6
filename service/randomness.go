package service

import "math/rand/v2"

type defaultRandomness struct{}

// NewDefaultRandomness returns a Randomness backed by the runtime's
// automatically seeded generator, safe for concurrent use
func NewDefaultRandomness() Randomness {
	return defaultRandomness{}
}

func (defaultRandomness) Float64() float64 {
	return rand.Float64()
}
