// Package register implements the HyperLogLog register bank: the fixed
// array of 2^p 8-bit registers that hold, per bucket, the maximum rank
// observed since the last reset. Two backing implementations share the
// Bank interface: Plain, an unsynchronized array mutated through an
// exclusive handle, and Atomic, a lock-free bank safe for unsynchronized
// multi-writer use through a shared handle. Atomic has no separate atomic
// cell per register: it packs four registers into each 32-bit atomic word
// and updates one register by compare-and-swap on its whole word.
package register

import "fmt"

// Bank is the logical operation set both register bank implementations
// expose. A bank's length never changes after construction.
type Bank interface {
	// Update sets registers[bucket] = max(registers[bucket], rank). It
	// never decreases a register.
	Update(bucket uint64, rank uint8)
	// Load returns the current value of registers[bucket].
	Load(bucket uint64) uint8
	// MergeFrom applies Update(b, other.Load(b)) for every bucket b. It
	// fails if the two banks don't have the same length.
	MergeFrom(other Bank) error
	// ZeroCount returns the number of registers still at their initial
	// value of 0.
	ZeroCount() uint64
	// HarmonicSum returns sum(2^-registers[b]) over every bucket,
	// computed from the precomputed Weights table.
	HarmonicSum() float64
	// Clear resets every register to 0.
	Clear()
	// Iter calls yield with each register's current value in bucket
	// order, stopping early if yield returns false. In the Atomic
	// implementation this is not a consistent snapshot across buckets.
	Iter(yield func(value uint8) bool)
	// Len returns m, the number of registers.
	Len() uint64
}

// Weights[r] == 2^-r for r in [0, 64]. Both bank implementations use this
// table for HarmonicSum instead of calling math.Pow/math.Exp2 per
// register, per the numeric-stability guidance that a register bank of up
// to 2^18 entries should avoid a transcendental call in its hot summation
// loop.
var Weights [65]float64

func init() {
	w := 1.0
	for r := 0; r <= 64; r++ {
		Weights[r] = w
		w /= 2
	}
}

// errLengthMismatch builds the error MergeFrom returns when the two banks
// don't share a length.
func errLengthMismatch(a, b uint64) error {
	return fmt.Errorf("register: bank lengths %d and %d don't match", a, b)
}
