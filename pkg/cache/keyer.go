package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// ArtifactKey identifies one rendered artifact of a seed.
	ArtifactKey(seed string, opts ArtifactKeyOpts) string
	// TokenKey identifies the seed assigned to a token.
	TokenKey(tokenID string) string
}

// ArtifactKeyOpts holds everything besides the seed that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(seed string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", seed, opts)
}

// TokenKey returns "token:<id>". Token ids are already normalized decimals.
func (DefaultKeyer) TokenKey(tokenID string) string {
	return "token:" + tokenID
}

// hashKey joins prefix and the SHA-256 of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
