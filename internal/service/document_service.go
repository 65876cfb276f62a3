package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	"github.com/syndicate-plus/syndicate-service/internal/storage"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// DocumentService manages the per-deal document locker. Reading and
// writing requires deal access (owner or syndicate member); deleting
// additionally requires being the uploader or the deal owner.
type DocumentService struct {
	documents   repository.DocumentRepository
	deals       repository.DealRepository
	blobs       storage.BlobStore
	maxFileSize int64
	logger      *zap.Logger
}

// DocumentDependencies bundles requirements for the document service.
type DocumentDependencies struct {
	DocumentRepo repository.DocumentRepository
	DealRepo     repository.DealRepository
	Blobs        storage.BlobStore
	MaxFileSize  int64
	Logger       *zap.Logger
}

// NewDocumentService constructs the service.
func NewDocumentService(deps DocumentDependencies) *DocumentService {
	return &DocumentService{
		documents:   deps.DocumentRepo,
		deals:       deps.DealRepo,
		blobs:       deps.Blobs,
		maxFileSize: deps.MaxFileSize,
		logger:      deps.Logger,
	}
}

// Upload stores file bytes in the blob store and records metadata.
func (s *DocumentService) Upload(ctx context.Context, callerFirmID, dealID, fileName, fileType string, data []byte) (*domain.Document, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("no file uploaded", nil)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, apperrors.NewValidationError("file exceeds maximum allowed size", map[string]any{
			"max_bytes": s.maxFileSize,
		})
	}

	if err := s.requireDealAccess(ctx, callerFirmID, dealID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%d-%s", dealID, time.Now().UnixMilli(), fileName)
	url, err := s.blobs.Put(ctx, key, data)
	if err != nil {
		return nil, err
	}

	document := &domain.Document{
		DealID:     dealID,
		FileName:   fileName,
		StorageKey: key,
		FileURL:    url,
		FileSize:   int64(len(data)),
		FileType:   fileType,
		UploadedBy: callerFirmID,
	}
	if err := s.documents.Create(ctx, document); err != nil {
		// Best effort cleanup so the locker does not accumulate
		// unreferenced blobs.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn("orphan blob cleanup failed", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return document, nil
}

// ListForDeal returns document metadata for a deal the caller may read.
func (s *DocumentService) ListForDeal(ctx context.Context, callerFirmID, dealID string) ([]repository.DocumentWithUploader, error) {
	if err := s.requireDealAccess(ctx, callerFirmID, dealID); err != nil {
		return nil, err
	}
	return s.documents.ListByDeal(ctx, dealID)
}

// Delete removes a document and its stored bytes.
func (s *DocumentService) Delete(ctx context.Context, callerFirmID, documentID string) error {
	document, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("document", map[string]any{"document_id": documentID})
		}
		return err
	}

	deal, err := s.deals.GetByID(ctx, document.DealID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	isOwner := deal != nil && deal.OwnerFirmID == callerFirmID
	if document.UploadedBy != callerFirmID && !isOwner {
		return apperrors.NewForbidden("only the uploader or the deal owner can delete a document")
	}

	if err := s.documents.Delete(ctx, documentID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, document.StorageKey); err != nil {
		s.logger.Warn("blob delete failed", zap.String("key", document.StorageKey), zap.Error(err))
	}
	return nil
}

func (s *DocumentService) requireDealAccess(ctx context.Context, callerFirmID, dealID string) error {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
		}
		return err
	}
	if !deal.CanAccess(callerFirmID) {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}
