package storage

import (
	"context"
	"io"
)

type Storage interface {
	Upload(ctx context.Context, objectKey string, body io.Reader, contentType string) (string, error)
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectKey string) error
}

type ProviderConfig interface {
	Validate() error
}
