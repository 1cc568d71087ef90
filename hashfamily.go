package hyperloglog

import (
	"math/rand"
	"sync"
	"time"

	metro "github.com/dgryski/go-metro"
)

// HashFamily is the hash capability a sketch consumes: a 64-bit digest of
// data, parameterized by a seed so that two sketches built from different
// seeds sample independent hash families. It is kept as a concrete
// function type rather than an interface with a Write/Sum method pair so
// that the fingerprint call on the insert hot path is a direct call, not
// a virtual dispatch.
type HashFamily func(data []byte, seed uint64) uint64

// defaultHashFamily wraps go-metro's 64-bit hash, the same hash family the
// teacher's bloom and cuckoo filters use (at 128 bits, via Hash128) for
// their own index derivation. HyperLogLog needs only a single 64-bit
// digest per element, so Hash64 is used directly instead.
func defaultHashFamily(data []byte, seed uint64) uint64 {
	return metro.Hash64(data, seed)
}

var (
	entropyOnce sync.Once
	entropySrc  *rand.Rand
	entropyMu   sync.Mutex
)

// defaultSeed draws a fresh seed for the default hash family from a
// process-wide RNG; each call returns a new value. It follows the teacher's own entropy pattern in utils.go
// (rand.NewSource(time.Now().UnixNano())): a fast user-space RNG seeded
// once from wall-clock time, adequate for randomizing which hash family a
// sketch samples, not for any cryptographic purpose. Callers that need a
// deterministic or syscall-sourced seed should use NewWithSeed /
// NewConcurrentWithSeed instead.
func defaultSeed() uint64 {
	entropyOnce.Do(func() {
		entropySrc = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return entropySrc.Uint64()
}
