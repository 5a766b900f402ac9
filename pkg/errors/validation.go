package errors

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/matzehuels/squiggle/pkg/squiggle"
)

var tokenIDRegex = regexp.MustCompile(`^[0-9]+$`)

// ParseSeed parses a hex seed, returning an ErrCodeInvalidSeed error on
// malformed input.
func ParseSeed(s string) (squiggle.Seed, error) {
	seed, err := squiggle.ParseSeed(s)
	if err != nil {
		return seed, Wrap(ErrCodeInvalidSeed, err, "invalid seed")
	}
	return seed, nil
}

// NormalizeTokenID validates a decimal token identifier and strips leading
// zeros so "007" and "7" address the same token.
//
// Token identifiers are unsigned 256-bit integers written in base 10.
func NormalizeTokenID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", New(ErrCodeInvalidToken, "token id cannot be empty")
	}
	if !tokenIDRegex.MatchString(id) {
		return "", New(ErrCodeInvalidToken, "token id must be a non-negative decimal integer: %q", id)
	}
	n, ok := new(big.Int).SetString(id, 10)
	if !ok || n.BitLen() > 256 {
		return "", New(ErrCodeInvalidToken, "token id does not fit in 256 bits")
	}
	return n.String(), nil
}
