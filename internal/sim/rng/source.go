// Package rng provides the randomness abstraction for the simulator.
//
// Every stochastic check in a run (crit, evade, effect proc) draws from a
// single Source so that a fixed seed reproduces the run bit-for-bit, and so
// parallel runs can hold fully independent streams.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// Source is the randomness provider for combat checks.
//
// A Source is owned by exactly one run and is not safe for concurrent use;
// independent runs must hold independent Sources.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
	// IntN returns a non-negative value in [0, n).
	//
	// Precondition: n > 0.
	IntN(n int) int
}

// seededSource implements Source on top of a PCG generator.
type seededSource struct {
	r *mathrand.Rand
}

// NewSeeded returns a deterministic Source for the given (seed, stream)
// pair. The same pair always yields the same value sequence; distinct
// stream values derived from one seed yield independent streams, which is
// how a batch hands each run its own generator.
func NewSeeded(seed, stream uint64) Source {
	return &seededSource{r: mathrand.New(mathrand.NewPCG(seed, stream))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

func (s *seededSource) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with n <= 0")
	}
	return s.r.IntN(n)
}

// RandomSeed draws a fresh seed from crypto/rand for batches that did not
// request reproducibility. The seed is returned, not hidden, so the caller
// can report it and replay the batch later.
func RandomSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Probability clamps p to [0, 1] and reports whether an independent check
// against p succeeded using src.
func Probability(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}
