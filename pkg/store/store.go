// Package store persists the token id to seed assignments behind tokenURI.
//
// A token is registered once with its seed and never changes afterwards;
// registering an existing token id again fails with a conflict unless the
// seed is identical. Three backends are provided:
//   - memory: in-process map for tests and one-shot CLI runs
//   - file: a single JSON document for local CLI usage
//   - mongo: a MongoDB collection for the HTTP server and workers
//
// # Usage
//
//	s := store.NewMemoryStore()
//	if err := s.Put(ctx, "1", seed); err != nil {
//	    return err
//	}
//	seed, err := s.Get(ctx, "1")
//	if errors.Is(err, errors.ErrCodeTokenNotFound) {
//	    // unknown token
//	}
package store

import (
	"context"

	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// Store maps token ids to seeds.
//
// Token ids are canonical decimal strings (see errors.NormalizeTokenID).
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the seed registered for tokenID, or an error with code
	// ErrCodeTokenNotFound.
	Get(ctx context.Context, tokenID string) (squiggle.Seed, error)

	// Put registers seed for tokenID. Re-registering the same seed is a
	// no-op; a different seed fails with ErrCodeConflict.
	Put(ctx context.Context, tokenID string, seed squiggle.Seed) error

	// Count returns the number of registered tokens.
	Count(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

func notFound(tokenID string) error {
	return errors.New(errors.ErrCodeTokenNotFound, "token %s not found", tokenID)
}

func conflict(tokenID string) error {
	return errors.New(errors.ErrCodeConflict, "token %s already has a different seed", tokenID)
}
