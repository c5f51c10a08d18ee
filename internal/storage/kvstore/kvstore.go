// Package kvstore implements storage.Store on the local filesystem: one
// file per collection key under a data directory.
package kvstore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/shoplite/storefront/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps each collection document in <dir>/<key>.json.
type Store struct {
	dir string
}

// Open ensures the data directory exists and returns a Store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &Store{dir: dir}, nil
}

// Load returns the document stored under key, or storage.ErrNotFound.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	doc, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrapf(err, "read %q", key)
	}
	return doc, nil
}

// Save replaces the document under key. The document is written to a
// temporary file and renamed into place so a crash mid-write never leaves
// a torn document behind.
func (s *Store) Save(_ context.Context, key string, doc []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp for %q", key)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %q", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %q", key)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename %q", key)
	}
	return nil
}

// Delete removes the document under key. Absent keys are a no-op.
func (s *Store) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %q", key)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
