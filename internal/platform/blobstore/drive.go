package blobstore

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveStore persists uploads to Google Drive and returns the file's
// webViewLink after granting anyone-with-the-link read access. The original
// filename is passed through unmodified; Drive owns deduplication.
type DriveStore struct {
	svc      *drive.Service
	folderID string
}

// NewDriveStore builds a Drive client from a credentials file. folderID, when
// non-empty, becomes the parent folder of every upload.
func NewDriveStore(ctx context.Context, credentialsFile, folderID string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveStore{svc: svc, folderID: folderID}, nil
}

// Upload creates the Drive file, makes it link-readable, and returns its id
// and shareable link. Single attempt; any API error surfaces as
// ErrBackendFailure.
func (s *DriveStore) Upload(ctx context.Context, filename, contentType string, content io.Reader) (*UploadResult, error) {
	meta := &drive.File{Name: filename}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	f, err := s.svc.Files.Create(meta).
		Media(content, googleapi.ContentType(contentType)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: create drive file: %v", ErrBackendFailure, err)
	}

	_, err = s.svc.Permissions.Create(f.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: share drive file %s: %v", ErrBackendFailure, f.Id, err)
	}

	return &UploadResult{
		FileID:  f.Id,
		Key:     filename,
		Link:    f.WebViewLink,
		Message: "File uploaded successfully to Google Drive.",
	}, nil
}
