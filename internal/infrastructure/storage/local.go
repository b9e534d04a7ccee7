// Package storage persists uploaded blobs on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// LocalStore writes blobs into a flat directory. Storage filenames are
// server-generated (`<id>.<ext>`), never client input, so no path traversal
// handling is needed beyond rejecting separators.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating files directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(filename string, r io.Reader) error {
	path, err := s.path(filename)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing blob: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(filename string) (io.ReadCloser, error) {
	path, err := s.path(filename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("opening blob: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Remove(filename string) error {
	path, err := s.path(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}

func (s *LocalStore) path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", domain.ErrFileNotFound
	}
	return filepath.Join(s.dir, filename), nil
}
