package register

import (
	"sync"
	"testing"
)

func TestAtomicUpdateIsMonotonicMax(t *testing.T) {
	b := NewAtomic(16)
	b.Update(3, 5)
	if got := b.Load(3); got != 5 {
		t.Fatalf("Load(3) = %d, want 5", got)
	}
	b.Update(3, 2)
	if got := b.Load(3); got != 5 {
		t.Fatalf("Update with smaller rank decreased register: got %d, want 5", got)
	}
	b.Update(3, 9)
	if got := b.Load(3); got != 9 {
		t.Fatalf("Load(3) = %d, want 9", got)
	}
}

func TestAtomicPackingIsolatesNeighboringRegisters(t *testing.T) {
	b := NewAtomic(8)
	// buckets 0..3 share a word; make sure writing one never disturbs
	// another.
	b.Update(0, 10)
	b.Update(1, 20)
	b.Update(2, 30)
	b.Update(3, 40)
	want := []uint8{10, 20, 30, 40}
	for i, w := range want {
		if got := b.Load(uint64(i)); got != w {
			t.Fatalf("Load(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestAtomicConcurrentUpdatesConvergeToMax(t *testing.T) {
	b := NewAtomic(4)
	var wg sync.WaitGroup
	ranks := []uint8{3, 7, 1, 9, 5, 12, 2, 8}
	for _, r := range ranks {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Update(0, r)
		}()
	}
	wg.Wait()
	if got := b.Load(0); got != 12 {
		t.Fatalf("Load(0) = %d, want 12 (max of concurrent updates)", got)
	}
}

func TestAtomicZeroCountAndHarmonicSum(t *testing.T) {
	b := NewAtomic(4)
	if got := b.ZeroCount(); got != 4 {
		t.Fatalf("ZeroCount on fresh bank = %d, want 4", got)
	}
	b.Update(0, 1)
	if got := b.HarmonicSum(); got != 3+Weights[1] {
		t.Fatalf("HarmonicSum = %v, want %v", got, 3+Weights[1])
	}
}

func TestAtomicClear(t *testing.T) {
	b := NewAtomic(8)
	for i := uint64(0); i < 8; i++ {
		b.Update(i, uint8(i+1))
	}
	b.Clear()
	if got := b.ZeroCount(); got != 8 {
		t.Fatalf("ZeroCount after Clear = %d, want 8", got)
	}
}

func TestAtomicMergeFromLengthMismatch(t *testing.T) {
	a := NewAtomic(8)
	b := NewAtomic(16)
	if err := a.MergeFrom(b); err == nil {
		t.Fatal("expected error merging banks of different length")
	}
}

func TestAtomicMergeFromPlain(t *testing.T) {
	a := NewAtomic(8)
	p := NewPlain(8)
	p.Update(0, 3)
	p.Update(5, 6)
	if err := a.MergeFrom(p); err != nil {
		t.Fatalf("MergeFrom: %v", err)
	}
	if got := a.Load(0); got != 3 {
		t.Fatalf("Load(0) = %d, want 3", got)
	}
	if got := a.Load(5); got != 6 {
		t.Fatalf("Load(5) = %d, want 6", got)
	}
}

func TestAtomicLen(t *testing.T) {
	b := NewAtomic(1024)
	if got := b.Len(); got != 1024 {
		t.Fatalf("Len() = %d, want 1024", got)
	}
}
