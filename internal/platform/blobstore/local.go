package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore persists uploads as files under a dedicated directory, named by
// GenerateKey. Files are served back at /uploads/<key>.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the uploads directory if needed and returns a store
// writing into it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory uploads are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Upload writes the content to disk under a freshly generated storage key.
// A write that succeeds before a later failure in the request is left in
// place; there is no cleanup pass.
func (s *LocalStore) Upload(ctx context.Context, filename, contentType string, content io.Reader) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	key := GenerateKey(filename)
	path := filepath.Join(s.dir, key)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrBackendFailure, key, err)
	}

	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		return nil, fmt.Errorf("%w: write %s: %v", ErrBackendFailure, key, err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %v", ErrBackendFailure, key, err)
	}

	return &UploadResult{
		FileID:  key,
		Key:     key,
		Link:    "/uploads/" + key,
		Message: "File uploaded successfully to local filesystem.",
	}, nil
}
