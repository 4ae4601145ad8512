package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"table-reserve/internal/infra"
)

// FileStore persists each key as a JSON file under a data directory. This is
// the closest server-side analog of the browser-local storage the legacy
// widget used.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, infra.WrapStorageErr("failed to create data directory", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, infra.WrapStorageErr("failed to read snapshot file", err)
	}
	return data, true, nil
}

func (s *FileStore) Save(_ context.Context, key string, value []byte) error {
	path := s.path(key)

	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return infra.WrapStorageErr("failed to create temp snapshot file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return infra.WrapStorageErr("failed to write snapshot file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return infra.WrapStorageErr("failed to close snapshot file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return infra.WrapStorageErr("failed to replace snapshot file", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
