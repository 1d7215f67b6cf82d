package storage

import (
	"context"
	"io"
	"time"
)

// DocumentStorage is the interface for the file backends holding timesheet
// evidence and uploaded invoice documents. The local implementation serves
// development and tests; cloud storage (S3, GCS) can slot in behind it.
type DocumentStorage interface {
	// GeneratePresignedUploadURL generates a presigned URL for uploading
	// key: storage path/key for the file
	// contentType: MIME type (e.g., "application/pdf")
	// expiresIn: how long the URL should be valid
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL generates a presigned URL for downloading
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error

	// SaveFile saves a file (used by the local HTTP upload handler)
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a file for reading (used by the local HTTP download handler)
	ReadFile(key string) (io.ReadCloser, error)
}
