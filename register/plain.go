package register

// Plain is an unsynchronized register bank. It is mutated through an
// exclusive handle: callers sharing a *Plain across goroutines must
// provide their own synchronization, or use Atomic instead.
type Plain struct {
	registers []uint8
}

// NewPlain allocates a Plain bank with m registers, all initialized to 0.
func NewPlain(m uint64) *Plain {
	return &Plain{registers: make([]uint8, m)}
}

// Update sets registers[bucket] = max(registers[bucket], rank).
func (b *Plain) Update(bucket uint64, rank uint8) {
	if rank > b.registers[bucket] {
		b.registers[bucket] = rank
	}
}

// Load returns the current value of registers[bucket].
func (b *Plain) Load(bucket uint64) uint8 {
	return b.registers[bucket]
}

// MergeFrom applies Update(i, other.Load(i)) for every bucket i.
func (b *Plain) MergeFrom(other Bank) error {
	if uint64(len(b.registers)) != other.Len() {
		return errLengthMismatch(uint64(len(b.registers)), other.Len())
	}
	for i := range b.registers {
		if v := other.Load(uint64(i)); v > b.registers[i] {
			b.registers[i] = v
		}
	}
	return nil
}

// ZeroCount returns the number of registers still at 0.
func (b *Plain) ZeroCount() uint64 {
	var n uint64
	for _, r := range b.registers {
		if r == 0 {
			n++
		}
	}
	return n
}

// HarmonicSum returns sum(2^-registers[b]) over every bucket.
func (b *Plain) HarmonicSum() float64 {
	var s float64
	for _, r := range b.registers {
		s += Weights[r]
	}
	return s
}

// Clear resets every register to 0.
func (b *Plain) Clear() {
	for i := range b.registers {
		b.registers[i] = 0
	}
}

// Iter calls yield with each register's current value in bucket order.
func (b *Plain) Iter(yield func(uint8) bool) {
	for _, r := range b.registers {
		if !yield(r) {
			return
		}
	}
}

// Len returns m, the number of registers.
func (b *Plain) Len() uint64 {
	return uint64(len(b.registers))
}
