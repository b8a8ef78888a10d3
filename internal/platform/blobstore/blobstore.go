// Package blobstore persists uploaded prescription files. It defines the
// Store interface, upload validation rules, the storage-key generator, and
// three backends: local filesystem, Google Drive, and an in-memory mock used
// when no Drive credentials are configured.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrUnsupportedType = errors.New("file type not allowed")
	ErrFileTooLarge    = errors.New("file size exceeds 50MB limit")
	ErrBackendFailure  = errors.New("storage backend failure")
)

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// MaxFileSize is the maximum allowed upload size in bytes (50 MB, inclusive).
const MaxFileSize = 50 * 1024 * 1024

// allowedContentTypes is the closed set of accepted upload MIME types.
var allowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/jpg",
	"application/pdf",
}

var allowedContentTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(allowedContentTypes))
	for _, ct := range allowedContentTypes {
		m[ct] = true
	}
	return m
}()

// AllowedContentTypes returns the accepted MIME types for user-facing
// error messages.
func AllowedContentTypes() []string {
	out := make([]string, len(allowedContentTypes))
	copy(out, allowedContentTypes)
	return out
}

// ValidateUpload checks the declared content type and byte size of an upload
// before any bytes are persisted. The type check runs first; a file of
// exactly MaxFileSize passes.
func ValidateUpload(contentType string, size int64) error {
	if !allowedContentTypeSet[contentType] {
		return fmt.Errorf("%w: %q (allowed: %s)", ErrUnsupportedType, contentType, strings.Join(allowedContentTypes, ", "))
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Store interface
// ---------------------------------------------------------------------------

// UploadResult is what a backend reports after persisting one upload.
type UploadResult struct {
	// FileID identifies the stored file within the backend. The local
	// backend uses the generated storage key; Drive uses its own file id.
	FileID string
	// Key is the name the file was stored under.
	Key string
	// Link is a shareable URL for the stored file.
	Link string
	// Message is a human-readable acknowledgment for the caller.
	Message string
}

// Store is the storage backend capability: persist raw bytes, get back an
// identifier and a shareable link. The backend is chosen once at process
// start; every implementation performs a single attempt with no retries.
type Store interface {
	Upload(ctx context.Context, filename, contentType string, content io.Reader) (*UploadResult, error)
}
