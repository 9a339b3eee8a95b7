// Package storage persists uploaded documents before they are analysed.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
)

// Upload is a document received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Object describes a stored upload.
type Object struct {
	Key      string
	Location string
	Size     int64
}

// Store saves uploads. Implementations are safe for concurrent use.
type Store interface {
	Save(ctx context.Context, upload Upload) (*Object, error)
}

// Error reports a failed storage operation.
type Error struct {
	Backend string
	Key     string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s storage: saving %s: %v", e.Backend, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns the Store selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "", "none":
		return NopStore{}, nil
	case "local":
		return NewLocalStore(cfg.Dir, logger)
	case "s3":
		return NewS3Store(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces a client-supplied name to a safe base name.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}

// objectKey returns a collision-free key for name under prefix.
func objectKey(prefix, name string) string {
	return prefix + uuid.NewString() + "_" + SanitizeFilename(name)
}

// NopStore discards uploads.
type NopStore struct{}

// Save implements Store.
func (NopStore) Save(_ context.Context, upload Upload) (*Object, error) {
	return &Object{Size: int64(len(upload.Data))}, nil
}
