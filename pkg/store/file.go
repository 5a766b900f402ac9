package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// FileStore keeps all tokens in one JSON file, rewritten on every Put.
// The file maps token ids to seed hex strings.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a file-backed store at path. The parent directory is
// created if needed; the file itself is created on the first Put.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create store dir")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() (map[string]squiggle.Seed, error) {
	tokens := make(map[string]squiggle.Seed)
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return tokens, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read store file")
	}
	if len(data) == 0 {
		return tokens, nil
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse %s", s.path)
	}
	return tokens, nil
}

func (s *FileStore) Get(ctx context.Context, tokenID string) (squiggle.Seed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens, err := s.load()
	if err != nil {
		return squiggle.Seed{}, err
	}
	seed, ok := tokens[tokenID]
	if !ok {
		return squiggle.Seed{}, notFound(tokenID)
	}
	return seed, nil
}

func (s *FileStore) Put(ctx context.Context, tokenID string, seed squiggle.Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.load()
	if err != nil {
		return err
	}
	if existing, ok := tokens[tokenID]; ok {
		if existing != seed {
			return conflict(tokenID)
		}
		return nil
	}
	tokens[tokenID] = seed

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal store")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write store file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "replace store file")
	}
	return nil
}

func (s *FileStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(tokens), nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
