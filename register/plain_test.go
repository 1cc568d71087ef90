package register

import (
	"math"
	"testing"
)

func TestPlainUpdateIsMonotonicMax(t *testing.T) {
	b := NewPlain(16)
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

func TestPlainZeroCount(t *testing.T) {
	b := NewPlain(8)
	if got := b.ZeroCount(); got != 8 {
		t.Fatalf("ZeroCount on fresh bank = %d, want 8", got)
	}
	b.Update(0, 1)
	b.Update(1, 4)
	if got := b.ZeroCount(); got != 6 {
		t.Fatalf("ZeroCount = %d, want 6", got)
	}
}

func TestPlainHarmonicSum(t *testing.T) {
	b := NewPlain(4)
	if got := b.HarmonicSum(); got != 4 {
		t.Fatalf("HarmonicSum of empty bank = %v, want 4", got)
	}
	b.Update(0, 1)
	want := 3 + Weights[1]
	if got := b.HarmonicSum(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("HarmonicSum = %v, want %v", got, want)
	}
}

func TestPlainClear(t *testing.T) {
	b := NewPlain(8)
	for i := uint64(0); i < 8; i++ {
		b.Update(i, uint8(i+1))
	}
	b.Clear()
	if got := b.ZeroCount(); got != 8 {
		t.Fatalf("ZeroCount after Clear = %d, want 8", got)
	}
}

func TestPlainMergeFrom(t *testing.T) {
	a := NewPlain(8)
	b := NewPlain(8)
	a.Update(0, 3)
	a.Update(1, 1)
	b.Update(0, 2)
	b.Update(1, 5)
	if err := a.MergeFrom(b); err != nil {
		t.Fatalf("MergeFrom: %v", err)
	}
	if got := a.Load(0); got != 3 {
		t.Fatalf("Load(0) = %d, want 3", got)
	}
	if got := a.Load(1); got != 5 {
		t.Fatalf("Load(1) = %d, want 5", got)
	}
}

func TestPlainMergeFromLengthMismatch(t *testing.T) {
	a := NewPlain(8)
	b := NewPlain(16)
	if err := a.MergeFrom(b); err == nil {
		t.Fatal("expected error merging banks of different length")
	}
}

func TestPlainMergeCommutative(t *testing.T) {
	seed := NewPlain(8)
	seed.Update(0, 4)
	seed.Update(2, 1)

	other := NewPlain(8)
	other.Update(0, 2)
	other.Update(1, 7)

	ab := NewPlain(8)
	ab.MergeFrom(seed)
	ab.MergeFrom(other)

	ba := NewPlain(8)
	ba.MergeFrom(other)
	ba.MergeFrom(seed)

	for i := uint64(0); i < 8; i++ {
		if ab.Load(i) != ba.Load(i) {
			t.Fatalf("merge not commutative at bucket %d: %d vs %d", i, ab.Load(i), ba.Load(i))
		}
	}
}

func TestPlainIter(t *testing.T) {
	b := NewPlain(4)
	b.Update(0, 1)
	b.Update(1, 2)
	b.Update(2, 3)
	b.Update(3, 4)
	var got []uint8
	b.Iter(func(v uint8) bool {
		got = append(got, v)
		return true
	})
	want := []uint8{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Iter()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPlainIterStopsEarly(t *testing.T) {
	b := NewPlain(4)
	n := 0
	b.Iter(func(uint8) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("Iter visited %d registers, want 2", n)
	}
}

func TestPlainLen(t *testing.T) {
	b := NewPlain(256)
	if got := b.Len(); got != 256 {
		t.Fatalf("Len() = %d, want 256", got)
	}
}
