package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore writes uploads into a directory on disk.
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStore creates dir if needed and returns a store writing into it.
func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage: directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("local storage: creating %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// Save implements Store.
func (s *LocalStore) Save(ctx context.Context, upload Upload) (*Object, error) {
	key := objectKey("", upload.Filename)
	if err := ctx.Err(); err != nil {
		return nil, &Error{Backend: "local", Key: key, Cause: err}
	}

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, upload.Data, 0644); err != nil {
		return nil, &Error{Backend: "local", Key: key, Cause: err}
	}

	s.logger.Debug("stored upload", zap.String("path", path), zap.Int("bytes", len(upload.Data)))
	return &Object{Key: key, Location: path, Size: int64(len(upload.Data))}, nil
}
