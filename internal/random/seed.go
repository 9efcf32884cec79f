// Package random generates seeds for pseudo-random dice.
//
// Seeds come from crypto/rand so that two unseeded games never share a
// sequence, while the seed itself is recorded to replay the game later.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedFunc produces a new seed.
type SeedFunc func() (int64, error)

// NewSeed generates a non-zero seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// ResolveSeed returns seed when it is set, or a fresh one from generate.
// A nil generate falls back to NewSeed.
func ResolveSeed(seed int64, generate SeedFunc) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	return generate()
}
