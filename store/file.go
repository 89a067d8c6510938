// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/katalvlaran/lvfst/fst"
)

// FileStore keeps one binary file per key. Keys are paths; relative keys
// are resolved against Dir when it is set.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir ("" means keys are used as given).
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(key string) string {
	if s.Dir == "" || filepath.IsAbs(key) {
		return key
	}
	return filepath.Join(s.Dir, key)
}

// Save writes f to the key's file, creating parent directories.
func (s *FileStore) Save(_ context.Context, key string, f *fst.Fst) error {
	if err := checkKey(key); err != nil {
		return err
	}
	p := s.path(key)
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return f.WriteFile(p)
}

// Load reads the key's file.
func (s *FileStore) Load(_ context.Context, key string) (*fst.Fst, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	f, err := fst.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key)
	}
	return f, err
}

// Delete removes the key's file.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(key)
	}
	return err
}
