// Package random provides the draw sources used by roulette tables.
//
// Production tables use a math/rand generator seeded from crypto/rand.
// Tests substitute a Sequence to script exact draws.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source picks an index in [0, n).
type Source interface {
	Intn(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a generator seeded from crypto/rand.
func New() (Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewWithSeed(seed), nil
}

// NewWithSeed returns a generator with a fixed seed.
func NewWithSeed(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Sequence replays scripted indexes in order, wrapping at the end.
// Each value is reduced modulo n so it always lands in range.
type Sequence struct {
	values []int
	next   int
	calls  int
}

func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Intn(n int) int {
	s.calls++
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Calls reports how many draws were requested.
func (s *Sequence) Calls() int {
	return s.calls
}
