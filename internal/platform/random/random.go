// Package random provides the seedable uniform source used for ingredient drops.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// Seeded is a math/rand backed Source. It is not safe for concurrent use;
// callers serialize access through the kitchen's critical section.
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

func NewSeeded(seed int64) *Seeded {
	return &Seeded{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) Float64() float64 {
	return s.rng.Float64()
}

func (s *Seeded) Seed() int64 {
	return s.seed
}

// New returns a Seeded source for seed, or for a fresh crypto seed when seed is 0.
func New(seed int64) (*Seeded, error) {
	if seed != 0 {
		return NewSeeded(seed), nil
	}
	fresh, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeeded(fresh), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
