package squiggle

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// SeedSize is the number of bytes in a [Seed].
const SeedSize = 32

// Seed is the opaque 32-byte value every artifact is derived from.
type Seed [SeedSize]byte

// ParseSeed decodes a 64-character hex string, with or without a "0x" prefix.
func ParseSeed(s string) (Seed, error) {
	var seed Seed
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != hex.EncodedLen(SeedSize) {
		return seed, fmt.Errorf("seed must be %d hex characters, got %d", hex.EncodedLen(SeedSize), len(s))
	}
	if _, err := hex.Decode(seed[:], []byte(s)); err != nil {
		return seed, fmt.Errorf("decode seed: %w", err)
	}
	return seed, nil
}

// MustParseSeed is like [ParseSeed] but panics on malformed input.
// Intended for tests and package-level fixtures.
func MustParseSeed(s string) Seed {
	seed, err := ParseSeed(s)
	if err != nil {
		panic(err)
	}
	return seed
}

// RandomSeed returns a seed filled from crypto/rand. It is a convenience
// for tooling; nothing in the generation pipeline depends on how a seed
// was obtained.
func RandomSeed() (Seed, error) {
	var seed Seed
	if _, err := rand.Read(seed[:]); err != nil {
		return seed, fmt.Errorf("read random seed: %w", err)
	}
	return seed, nil
}

// String returns the lowercase hex encoding without prefix.
func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// IsZero reports whether every byte is zero.
func (s Seed) IsZero() bool {
	return s == Seed{}
}

// MarshalText implements encoding.TextMarshaler so seeds serialize as hex.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	parsed, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
