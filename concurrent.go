package hyperloglog

import (
	"fmt"
	"io"

	"github.com/kwertop/hyperloglog/register"
)

// ConcurrentSketch is a HyperLogLog cardinality estimator backed by a
// lock-free register bank: Insert, Count, Merge, Clear, Len and
// Precision may all be called concurrently, from any number of
// goroutines, through a shared *ConcurrentSketch handle, with no
// external synchronization. Its backing storage lives as long as its
// longest-lived holder.
//
// Count's result reflects any subset of concurrent Inserts that had
// completed, plus any subset of Inserts still in flight, at the moment
// each register was read; it is not a snapshot atomic across registers.
// Clear is likewise not atomic with respect to concurrent Insert: a
// Clear interleaved with writers may observe intermediate non-zero
// registers afterward. Callers that require a quiescent clear or a
// fully consistent count must coordinate externally (for example, by
// draining writers first).
type ConcurrentSketch struct {
	p    uint8
	seed uint64
	hash HashFamily
	bank *register.Atomic
}

// NewConcurrent allocates a ConcurrentSketch at precision p using the
// default hash family, seeded from process entropy.
func NewConcurrent(p uint8) (*ConcurrentSketch, error) {
	return NewConcurrentWithHasher(p, defaultHashFamily)
}

// NewConcurrentWithSeed allocates a ConcurrentSketch at precision p
// using the default hash family with a caller-supplied, deterministic
// seed.
func NewConcurrentWithSeed(p uint8, seed uint64) (*ConcurrentSketch, error) {
	if !validPrecision(p) {
		return nil, fmt.Errorf("hyperloglog: precision %d: %w", p, ErrInvalidPrecision)
	}
	return &ConcurrentSketch{p: p, seed: seed, hash: defaultHashFamily, bank: register.NewAtomic(uint64(1) << p)}, nil
}

// NewConcurrentWithHasher allocates a ConcurrentSketch at precision p
// using a caller-supplied hash family, seeded from process entropy.
func NewConcurrentWithHasher(p uint8, h HashFamily) (*ConcurrentSketch, error) {
	s, err := NewConcurrentWithSeed(p, defaultSeed())
	if err != nil {
		return nil, err
	}
	s.hash = h
	return s, nil
}

// Insert folds data into the sketch. Safe to call concurrently from any
// number of goroutines.
func (s *ConcurrentSketch) Insert(data []byte) {
	bucket, rank := fingerprint(s.hash(data, s.seed), s.p)
	s.bank.Update(bucket, rank)
}

// InsertAll inserts every element produced by seq, consuming it once.
func (s *ConcurrentSketch) InsertAll(seq ByteSeq) {
	seq(func(item []byte) bool {
		s.Insert(item)
		return true
	})
}

// Count returns the sketch's current cardinality estimate, rounded to
// the nearest non-negative integer. Count never fails, and never blocks
// concurrent writers.
func (s *ConcurrentSketch) Count() uint64 {
	return roundEstimate(estimate(s.p, s.bank.HarmonicSum(), s.bank.ZeroCount()))
}

// Merge folds other's registers into s. It fails with
// ErrIncompatiblePrecision if the two sketches don't share a precision.
// Like Insert, Merge never takes a lock; it is not atomic with respect
// to concurrent writers on either sketch.
func (s *ConcurrentSketch) Merge(other *ConcurrentSketch) error {
	if s.p != other.p {
		return fmt.Errorf("hyperloglog: merge precision %d with %d: %w", s.p, other.p, ErrIncompatiblePrecision)
	}
	return s.bank.MergeFrom(other.bank)
}

// Clear resets every register to 0. See the type doc comment for its
// interaction with concurrent Insert.
func (s *ConcurrentSketch) Clear() {
	s.bank.Clear()
}

// Len returns m = 2^p, the number of registers.
func (s *ConcurrentSketch) Len() uint64 {
	return s.bank.Len()
}

// Precision returns p.
func (s *ConcurrentSketch) Precision() uint8 {
	return s.p
}

// MarshalBinary encodes the sketch in the same wire format as Sketch:
// a 1-byte precision, an 8-byte little-endian seed, and m register
// bytes in bucket order. It takes a point-in-time read of each
// register; under concurrent writers that read is not a consistent
// cross-register snapshot.
func (s *ConcurrentSketch) MarshalBinary() ([]byte, error) {
	return encodeBank(s.p, s.seed, s.bank), nil
}

// UnmarshalBinary decodes a payload produced by MarshalBinary (or by
// Sketch's MarshalBinary) into s, replacing its register bank.
func (s *ConcurrentSketch) UnmarshalBinary(data []byte) error {
	p, seed, registers, err := decodeHeader(data)
	if err != nil {
		return err
	}
	s.p = p
	s.seed = seed
	s.bank = register.NewAtomicFrom(registers)
	if s.hash == nil {
		s.hash = defaultHashFamily
	}
	return nil
}

// WriteTo writes the sketch's MarshalBinary encoding to w.
func (s *ConcurrentSketch) WriteTo(w io.Writer) (int64, error) {
	data, _ := s.MarshalBinary()
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom reads a MarshalBinary encoding from r and replaces s's state
// with it.
func (s *ConcurrentSketch) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	if err := s.UnmarshalBinary(data); err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), nil
}
