package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
	"linguabook-backend/internal/storage"
)

// Purposes namespace storage keys so evidence files and invoice documents
// never collide.
const (
	DocumentPurposeTimesheetEvidence = "timesheet-evidence"
	DocumentPurposeInvoiceDocument   = "invoice-document"
)

const presignedURLTTL = time.Hour

type documentService struct {
	store storage.DocumentStorage
}

func NewDocumentService(store storage.DocumentStorage) DocumentService {
	return &documentService{store: store}
}

func (s *documentService) CreateUploadURL(ctx context.Context, actor domain.Actor, purpose, filename, contentType string) (*DocumentUploadGrant, error) {
	switch purpose {
	case DocumentPurposeTimesheetEvidence, DocumentPurposeInvoiceDocument:
	default:
		return nil, domain.NewValidationError("purpose", "purpose must be timesheet-evidence or invoice-document")
	}
	switch contentType {
	case "application/pdf", "image/jpeg", "image/png":
	default:
		return nil, domain.NewValidationError("content_type", "content type must be application/pdf, image/jpeg or image/png")
	}
	if filename == "" || strings.ContainsAny(filename, "/\\") {
		return nil, domain.NewValidationError("filename", "filename is required and must not contain path separators")
	}

	// Unique filename to avoid collision.
	key := fmt.Sprintf("%s/%s/%d_%s", purpose, actor.ID, time.Now().UnixNano(), filename)

	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, presignedURLTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to generate upload URL")
	}
	downloadURL, err := s.store.GeneratePresignedDownloadURL(ctx, key, presignedURLTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to generate download URL")
	}

	logger.Info("Issued document upload URL", "key", key, "actor_id", actor.ID)
	return &DocumentUploadGrant{
		Key:         key,
		UploadURL:   uploadURL,
		DownloadURL: downloadURL,
	}, nil
}

func (s *documentService) CreateDownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", domain.NewValidationError("key", "key is required")
	}
	exists, _, err := s.store.FileExists(ctx, key)
	if err != nil {
		return "", domain.NewInternalError("failed to check document")
	}
	if !exists {
		return "", domain.NewNotFoundError("document", key)
	}
	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, presignedURLTTL)
	if err != nil {
		return "", domain.NewInternalError("failed to generate download URL")
	}
	return url, nil
}

func (s *documentService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.NewValidationError("key", "key is required")
	}
	if err := s.store.DeleteFile(ctx, key); err != nil {
		return domain.NewInternalError("failed to delete document")
	}
	logger.Info("Deleted document", "key", key)
	return nil
}
