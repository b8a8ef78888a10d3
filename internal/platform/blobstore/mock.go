package blobstore

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockUpload records one upload accepted by the mock store.
type MockUpload struct {
	Filename    string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// MockDriveStore is a thread-safe, in-memory stand-in for the Drive backend.
// It is used when local uploads are disabled and no Drive credentials are
// configured, and as the test double for the upload flow. Links follow the
// Drive shape so callers render them the same way.
type MockDriveStore struct {
	mu      sync.RWMutex
	uploads map[string]MockUpload
}

// NewMockDriveStore returns a ready-to-use MockDriveStore.
func NewMockDriveStore() *MockDriveStore {
	return &MockDriveStore{uploads: make(map[string]MockUpload)}
}

// Upload consumes the content to measure its size and records the upload
// under a fresh uuid.
func (s *MockDriveStore) Upload(ctx context.Context, filename, contentType string, content io.Reader) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	n, err := io.Copy(io.Discard, content)
	if err != nil {
		return nil, fmt.Errorf("%w: read content: %v", ErrBackendFailure, err)
	}

	id := uuid.New().String()

	s.mu.Lock()
	s.uploads[id] = MockUpload{
		Filename:    filename,
		ContentType: contentType,
		Size:        n,
		UploadedAt:  time.Now().UTC(),
	}
	s.mu.Unlock()

	return &UploadResult{
		FileID:  id,
		Key:     filename,
		Link:    fmt.Sprintf("https://drive.google.com/file/d/%s/view?usp=sharing", id),
		Message: "File uploaded successfully (mock mode).",
	}, nil
}

// Get returns a recorded upload by file id.
func (s *MockDriveStore) Get(id string) (MockUpload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.uploads[id]
	return u, ok
}

// Len returns the number of recorded uploads.
func (s *MockDriveStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uploads)
}
