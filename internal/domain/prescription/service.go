package prescription

import (
	"context"
	"io"

	"github.com/medtrack/medtrack/internal/platform/blobstore"
)

// UploadResponse acknowledges a stored prescription file.
type UploadResponse struct {
	FileID        string `json:"file_id"`
	Filename      string `json:"filename"`
	ShareableLink string `json:"shareable_link"`
	Message       string `json:"message"`
}

// Service runs the upload flow against the storage backend chosen at
// process start.
type Service struct {
	store blobstore.Store
}

func NewService(store blobstore.Store) *Service {
	return &Service{store: store}
}

// Upload validates the declared content type and size, then hands the bytes
// to the backend in a single attempt. Validation failures reject the upload
// before anything is persisted; a backend failure after a partial local
// write leaves the file in place.
func (s *Service) Upload(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*UploadResponse, error) {
	if err := blobstore.ValidateUpload(contentType, size); err != nil {
		return nil, err
	}

	res, err := s.store.Upload(ctx, filename, contentType, content)
	if err != nil {
		return nil, err
	}

	return &UploadResponse{
		FileID:        res.FileID,
		Filename:      filename,
		ShareableLink: res.Link,
		Message:       res.Message,
	}, nil
}
