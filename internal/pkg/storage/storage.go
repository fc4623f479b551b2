package storage

import (
	"context"
	"io"
)

// FileStorage persists generated artifacts such as monthly hours workbooks.
type FileStorage interface {
	// Save writes the content under path and returns the cleaned key
	Save(ctx context.Context, content io.Reader, path string) (string, error)

	// Open retrieves a stored file
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
