package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is implemented by the gallery file backends
type Storage interface {
	// Put stores the object under key
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL of key
	GetURL(key string) string
}

// Config selects and configures a backend
type Config struct {
	Driver string // local | s3

	LocalDir     string
	LocalBaseURL string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// New creates the backend named by cfg.Driver
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
