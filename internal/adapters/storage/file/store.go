package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/financeflow/internal/apperrors"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
)

const blobExt = ".json"

// Store keeps one file per key in a directory. Writes go to a temporary file that is
// renamed over the target, so a crash never leaves a partial blob behind.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a store rooted at it.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("file store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

var _ portsrepo.BlobStore = (*Store)(nil)

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("blob %q: %w", key, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for blob %q: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op after a successful rename
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync blob %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close blob %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to commit blob %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}

// path maps a key to its file, rejecting keys that would escape the directory.
func (s *Store) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("%w: invalid blob key %q", apperrors.ErrValidation, key)
	}
	return filepath.Join(s.dir, key+blobExt), nil
}
