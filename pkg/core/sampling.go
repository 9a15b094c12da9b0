package core

import (
	"math/rand"
)

// Sampler provides random sampling for stochastic materials and lights.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// FixedSampler replays a fixed sequence of values, wrapping around at the end
type FixedSampler struct {
	Values []float64
	next   int
}

// NewFixedSampler creates a sampler that returns values in order
func NewFixedSampler(values ...float64) *FixedSampler {
	return &FixedSampler{Values: values}
}

// Get1D returns the next value in the sequence
func (f *FixedSampler) Get1D() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return v
}

// SeedSequence hands out distinct seeds derived from a base seed, one per
// stochastic component, so every material and light owns an independent stream
type SeedSequence struct {
	base int64
	next int64
}

// NewSeedSequence creates a sequence starting at base
func NewSeedSequence(base int64) *SeedSequence {
	return &SeedSequence{base: base}
}

// Sampler returns a fresh sampler seeded with the next seed in the sequence
func (s *SeedSequence) Sampler() Sampler {
	seed := s.base*1_000_003 + s.next
	s.next++
	return NewSeededSampler(seed)
}
