package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage abstracts where upload bytes live. The API serves URLs, never the
// bytes themselves, so the surface stays small.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	URL(path string) string
}

type Config struct {
	Type      string // local or r2
	BasePath  string // local only
	BaseURL   string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocal(cfg)
	case "r2", "s3":
		return NewR2(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
