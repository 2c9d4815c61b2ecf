// Package seedrand implements the linear congruential generator behind every
// simulated timing, id and chart in the service.
//
// The recurrence is the Numerical Recipes LCG:
//
//	s = (s*1664525 + 1013904223) mod 2^32
//
// and each draw returns s / 2^32. All arithmetic is uint32 so a seed yields the
// same stream on every platform.
package seedrand

import "math"

const (
	multiplier = 1664525
	increment  = 1013904223

	// DefaultSeed is used when no seed is supplied.
	DefaultSeed uint32 = 1337
)

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator is a seeded LCG. It is not safe for concurrent use.
type Generator struct {
	state uint32
	calls int64
}

// New returns a generator whose first draw advances from seed.
func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Default returns a generator seeded with DefaultSeed.
func Default() *Generator {
	return New(DefaultSeed)
}

// Next advances the state and returns it.
func (g *Generator) Next() uint32 {
	g.state = g.state*multiplier + increment
	g.calls++
	return g.state
}

// Float64 returns the next value in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.Next()) / (1 << 32)
}

// Uint64 combines two draws so the generator can back a math/rand/v2.Rand.
func (g *Generator) Uint64() uint64 {
	hi := uint64(g.Next())
	lo := uint64(g.Next())
	return hi<<32 | lo
}

// Intn returns floor(Float64()*n). Returns 0 if n <= 0 without drawing.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(g.Float64() * float64(n)))
}

// Chance draws once and reports whether the draw fell below p.
func (g *Generator) Chance(p float64) bool {
	return g.Float64() < p
}

// Pick returns a uniformly chosen element of items.
// Returns "" if items is empty.
func (g *Generator) Pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[g.Intn(len(items))]
}

// Base36 renders n base-36 fraction digits of a single draw, the way
// Number.prototype.toString(36) expands a value in [0,1).
func (g *Generator) Base36(n int) string {
	f := g.Float64()
	buf := make([]byte, n)
	for i := range buf {
		f *= 36
		d := int(f)
		buf[i] = base36Digits[d]
		f -= float64(d)
	}
	return string(buf)
}

// Calls reports how many raw draws have been taken.
func (g *Generator) Calls() int64 {
	return g.calls
}

// State returns the current internal state.
func (g *Generator) State() uint32 {
	return g.state
}
