package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore reads standards documents from a filesystem folder.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing folder is the same as an empty one; the ingestor
			// falls back to its seed set.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read standards directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isTextDocument(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", name, err)
	}
	return file, nil
}
