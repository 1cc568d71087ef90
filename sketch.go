package hyperloglog

import (
	"fmt"
	"io"

	"github.com/kwertop/hyperloglog/register"
)

// ByteSeq is a lazy, pull-free sequence of elements to insert: it calls
// yield once per element in order, stopping early if yield returns false.
// It follows the same push-iterator shape as register.Bank.Iter.
type ByteSeq func(yield func([]byte) bool)

// Sketch is a single-writer HyperLogLog cardinality estimator. It owns
// its register bank exclusively; sharing a *Sketch across goroutines
// without external synchronization is a data race. Use ConcurrentSketch
// for unsynchronized multi-writer access.
type Sketch struct {
	p    uint8
	seed uint64
	hash HashFamily
	bank *register.Plain
}

// New allocates a Sketch at precision p using the default hash family,
// seeded from process entropy.
func New(p uint8) (*Sketch, error) {
	return NewWithHasher(p, defaultHashFamily)
}

// NewWithSeed allocates a Sketch at precision p using the default hash
// family with a caller-supplied, deterministic seed.
func NewWithSeed(p uint8, seed uint64) (*Sketch, error) {
	if !validPrecision(p) {
		return nil, fmt.Errorf("hyperloglog: precision %d: %w", p, ErrInvalidPrecision)
	}
	return &Sketch{p: p, seed: seed, hash: defaultHashFamily, bank: register.NewPlain(uint64(1) << p)}, nil
}

// NewWithHasher allocates a Sketch at precision p using a caller-supplied
// hash family, seeded from process entropy.
func NewWithHasher(p uint8, h HashFamily) (*Sketch, error) {
	s, err := NewWithSeed(p, defaultSeed())
	if err != nil {
		return nil, err
	}
	s.hash = h
	return s, nil
}

// Insert folds data into the sketch: its fingerprint's bucket register is
// raised to the observed rank if larger than its current value.
func (s *Sketch) Insert(data []byte) {
	bucket, rank := fingerprint(s.hash(data, s.seed), s.p)
	s.bank.Update(bucket, rank)
}

// InsertAll inserts every element produced by seq, consuming it once.
func (s *Sketch) InsertAll(seq ByteSeq) {
	seq(func(item []byte) bool {
		s.Insert(item)
		return true
	})
}

// Count returns the sketch's current cardinality estimate, rounded to
// the nearest non-negative integer. Count never fails: an empty sketch
// returns 0.
func (s *Sketch) Count() uint64 {
	return roundEstimate(estimate(s.p, s.bank.HarmonicSum(), s.bank.ZeroCount()))
}

// Merge folds other's registers into s: for every bucket,
// s[bucket] = max(s[bucket], other[bucket]). It fails with
// ErrIncompatiblePrecision if the two sketches don't share a precision.
// Merging sketches seeded with different hash families or seeds is not
// refused — that would require tracking a hash-family identity this
// sketch doesn't serialize — but produces a cardinality estimate with no
// meaningful guarantees.
func (s *Sketch) Merge(other *Sketch) error {
	if s.p != other.p {
		return fmt.Errorf("hyperloglog: merge precision %d with %d: %w", s.p, other.p, ErrIncompatiblePrecision)
	}
	return s.bank.MergeFrom(other.bank)
}

// Clear resets every register to 0.
func (s *Sketch) Clear() {
	s.bank.Clear()
}

// Len returns m = 2^p, the number of registers (and hence the byte size
// of the register array).
func (s *Sketch) Len() uint64 {
	return s.bank.Len()
}

// Precision returns p.
func (s *Sketch) Precision() uint8 {
	return s.p
}

// MarshalBinary encodes the sketch as a 1-byte precision, an 8-byte
// little-endian seed, and m register bytes in bucket order.
func (s *Sketch) MarshalBinary() ([]byte, error) {
	return encodeBank(s.p, s.seed, s.bank), nil
}

// UnmarshalBinary decodes a payload produced by MarshalBinary (or by
// ConcurrentSketch's MarshalBinary, since the two share a wire format)
// into s, replacing its register bank. It restores p, seed and registers;
// an already-set hash family is kept, and a zero Sketch gets the default
// hash family.
func (s *Sketch) UnmarshalBinary(data []byte) error {
	p, seed, registers, err := decodeHeader(data)
	if err != nil {
		return err
	}
	s.p = p
	s.seed = seed
	s.bank = register.NewPlainFrom(registers)
	if s.hash == nil {
		s.hash = defaultHashFamily
	}
	return nil
}

// WriteTo writes the sketch's MarshalBinary encoding to w and returns the
// number of bytes written.
func (s *Sketch) WriteTo(w io.Writer) (int64, error) {
	data, _ := s.MarshalBinary()
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom reads a MarshalBinary encoding from r and replaces s's state
// with it.
func (s *Sketch) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	if err := s.UnmarshalBinary(data); err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), nil
}

// roundEstimate rounds a non-negative floating point estimate to the
// nearest uint64, per the public contract that Count is always a
// non-negative integer.
func roundEstimate(e float64) uint64 {
	if e < 0 {
		return 0
	}
	return uint64(e + 0.5)
}
