package hyperloglog

import (
	"encoding/binary"
	"fmt"

	"github.com/kwertop/hyperloglog/register"
)

// headerSize is the precision byte plus the 8-byte little-endian seed
// that precede the register array in the wire format.
const headerSize = 1 + 8

// encodeBank serializes p, seed and a bank's registers into the format
// spec'd for a sketch: 1-byte precision, 8-byte little-endian seed, then
// m register bytes in bucket order. The format is identical regardless
// of whether the bank is a Plain or an Atomic, so a plain sketch's bytes
// are byte-identical to a concurrent sketch's bytes for the same logical
// state.
func encodeBank(p uint8, seed uint64, bank register.Bank) []byte {
	m := bank.Len()
	out := make([]byte, headerSize+int(m))
	out[0] = p
	binary.LittleEndian.PutUint64(out[1:9], seed)
	i := headerSize
	bank.Iter(func(v uint8) bool {
		out[i] = v
		i++
		return true
	})
	return out
}

// decodeHeader validates and parses the common prefix of the wire
// format, returning the precision, seed and raw register bytes.
func decodeHeader(data []byte) (p uint8, seed uint64, registers []byte, err error) {
	if len(data) < headerSize {
		return 0, 0, nil, fmt.Errorf("hyperloglog: truncated payload (%d bytes): %w", len(data), ErrCorruptPayload)
	}
	p = data[0]
	if !validPrecision(p) {
		return 0, 0, nil, fmt.Errorf("hyperloglog: payload declares precision %d: %w", p, ErrInvalidPrecision)
	}
	m := uint64(1) << p
	if uint64(len(data)) != headerSize+m {
		return 0, 0, nil, fmt.Errorf(
			"hyperloglog: payload length %d disagrees with precision %d (want %d): %w",
			len(data), p, headerSize+m, ErrIncompatiblePrecision,
		)
	}
	seed = binary.LittleEndian.Uint64(data[1:9])
	registers = data[headerSize:]
	limit := maxRank(p)
	for _, v := range registers {
		if v > limit {
			return 0, 0, nil, fmt.Errorf(
				"hyperloglog: register value %d exceeds max rank %d for precision %d: %w",
				v, limit, p, ErrCorruptPayload,
			)
		}
	}
	return p, seed, registers, nil
}
