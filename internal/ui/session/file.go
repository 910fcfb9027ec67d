package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/recoilme/pudge"
)

// FileStore is a Store persisted to a pudge key/value file, used by the CLI to keep the session
// between invocations.
type FileStore struct {
	db *pudge.Db
}

// OpenFileStore opens (creating if needed) the session file at path.
// The file is readable by the current user only since it holds the auth token.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("could not create session directory: %w", err)
	}
	db, err := pudge.Open(path, &pudge.Config{
		FileMode:     0o600,
		DirMode:      0o700,
		SyncInterval: 1, // every second fsync
	})
	if err != nil {
		return nil, fmt.Errorf("could not open session file %s: %w", path, err)
	}
	return &FileStore{db: db}, nil
}

func (f *FileStore) Get(key string) (string, bool) {
	var value []byte
	if err := f.db.Get(key, &value); err != nil {
		return "", false
	}
	return string(value), true
}

func (f *FileStore) Set(key, value string) error {
	if err := f.db.Set(key, []byte(value)); err != nil {
		return fmt.Errorf("could not write %s to the session file: %w", key, err)
	}
	return nil
}

func (f *FileStore) Clear(keys ...string) error {
	for _, key := range keys {
		if err := f.db.Delete(key); err != nil && !errors.Is(err, pudge.ErrKeyNotFound) {
			return fmt.Errorf("could not remove %s from the session file: %w", key, err)
		}
	}
	return nil
}

// Close flushes and closes the file
func (f *FileStore) Close() error {
	return f.db.Close()
}
