package draw

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is a uniform random source. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// NewSource returns a seeded generator. A zero seed draws a fresh seed from crypto/rand.
func NewSource(seed uint64) (*rand.Rand, error) {
	if seed == 0 {
		s, err := newSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), nil
}

func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
