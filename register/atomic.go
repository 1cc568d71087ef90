package register

import "sync/atomic"

// registersPerWord is how many 8-bit registers are packed into one
// atomic.Uint32 word. Go has no atomic 8-bit cell in sync/atomic, so four
// registers share a word and are updated with a load/modify/CAS retry
// loop that only ever touches its own byte, the same packing scheme the
// lock-free Count-Min Sketch this package is grounded on uses for its
// saturating counters.
const registersPerWord = 4

// Atomic is a lock-free register bank safe for unsynchronized concurrent
// use through a shared handle: any number of goroutines may call Update,
// Load, MergeFrom, ZeroCount, HarmonicSum, Iter and Len concurrently
// without external locking. Clear is not atomic with respect to
// concurrent Update: a Clear interleaved with writers may leave some
// registers non-zero afterward. Callers needing a quiescent clear must
// coordinate externally.
type Atomic struct {
	words []atomic.Uint32
	m     uint64
}

// NewAtomic allocates an Atomic bank with m registers, all initialized to
// 0.
func NewAtomic(m uint64) *Atomic {
	return &Atomic{
		words: make([]atomic.Uint32, (m+registersPerWord-1)/registersPerWord),
		m:     m,
	}
}

func wordIndex(bucket uint64) (word uint64, shift uint) {
	word = bucket / registersPerWord
	shift = uint(bucket%registersPerWord) * 8
	return
}

// Update sets registers[bucket] = max(registers[bucket], rank) using a
// lock-free compare-and-swap loop on the containing word. Every failed
// CAS means another goroutine changed that word since it was loaded (by
// raising this register, one of the other registers packed into the same
// word, or by a Clear), so the loop always makes system-wide progress.
func (b *Atomic) Update(bucket uint64, rank uint8) {
	word, shift := wordIndex(bucket)
	w := &b.words[word]
	for {
		old := w.Load()
		cur := uint8(old >> shift)
		if rank <= cur {
			return
		}
		next := (old &^ (uint32(0xFF) << shift)) | (uint32(rank) << shift)
		if w.CompareAndSwap(old, next) {
			return
		}
	}
}

// Load returns the current value of registers[bucket]. It may race with
// concurrent Update calls to the same or neighboring registers; it
// observes whatever value was most recently published there.
func (b *Atomic) Load(bucket uint64) uint8 {
	word, shift := wordIndex(bucket)
	return uint8(b.words[word].Load() >> shift)
}

// MergeFrom applies Update(i, other.Load(i)) for every bucket i. Like
// Update, it is not atomic with respect to concurrent writers on either
// side: the result reflects some subset of concurrent inserts on other
// that had completed at the time each register was read.
func (b *Atomic) MergeFrom(other Bank) error {
	if b.m != other.Len() {
		return errLengthMismatch(b.m, other.Len())
	}
	for i := uint64(0); i < b.m; i++ {
		b.Update(i, other.Load(i))
	}
	return nil
}

// ZeroCount returns the number of registers observed at 0. As with Load,
// this is not an atomic snapshot across registers under concurrent
// writers.
func (b *Atomic) ZeroCount() uint64 {
	var n uint64
	for i := uint64(0); i < b.m; i++ {
		if b.Load(i) == 0 {
			n++
		}
	}
	return n
}

// HarmonicSum returns sum(2^-registers[b]) over every bucket, observed
// under the same non-atomic-across-registers semantics as ZeroCount.
func (b *Atomic) HarmonicSum() float64 {
	var s float64
	for i := uint64(0); i < b.m; i++ {
		s += Weights[b.Load(i)]
	}
	return s
}

// Clear resets every register to 0. It is not atomic with respect to
// concurrent Update: writers racing a Clear may leave registers non-zero
// once Clear returns.
func (b *Atomic) Clear() {
	for i := range b.words {
		b.words[i].Store(0)
	}
}

// Iter calls yield with each register's current value in bucket order.
// It is not a consistent snapshot under concurrent writers.
func (b *Atomic) Iter(yield func(uint8) bool) {
	for i := uint64(0); i < b.m; i++ {
		if !yield(b.Load(i)) {
			return
		}
	}
}

// Len returns m, the number of registers.
func (b *Atomic) Len() uint64 {
	return b.m
}
