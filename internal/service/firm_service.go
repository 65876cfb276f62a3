package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// FirmService manages firm profiles.
type FirmService struct {
	firms repository.FirmRepository
}

// NewFirmService constructs the service.
func NewFirmService(firms repository.FirmRepository) *FirmService {
	return &FirmService{firms: firms}
}

// ProfileUpdateInput carries a partial profile update. Nil fields keep
// their current value.
type ProfileUpdateInput struct {
	Jurisdictions      []string
	SectorFocus        []string
	TypicalDealSize    *domain.DealSizeRange
	RecentTransactions []string
	Description        *string
	ContactPerson      *string
}

// GetFirm returns any firm by id; callers strip credentials before
// serializing.
func (s *FirmService) GetFirm(ctx context.Context, id string) (*domain.Firm, error) {
	firm, err := s.firms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("firm", map[string]any{"firm_id": id})
		}
		return nil, err
	}
	return firm, nil
}

// UpdateProfile applies a partial update to the caller's own profile,
// validating shape on write.
func (s *FirmService) UpdateProfile(ctx context.Context, firmID string, input ProfileUpdateInput) (*domain.Firm, error) {
	firm, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("firm", map[string]any{"firm_id": firmID})
		}
		return nil, err
	}

	if input.TypicalDealSize != nil {
		r := *input.TypicalDealSize
		if r.Min < 0 || r.Max < 0 {
			return nil, apperrors.NewValidationError("deal size bounds cannot be negative", nil)
		}
		if r.Max != 0 && r.Min > r.Max {
			return nil, apperrors.NewValidationError("deal size min cannot exceed max", nil)
		}
		firm.Profile.TypicalDealSize = r
	}
	if input.Jurisdictions != nil {
		firm.Profile.Jurisdictions = input.Jurisdictions
	}
	if input.SectorFocus != nil {
		firm.Profile.SectorFocus = input.SectorFocus
	}
	if input.RecentTransactions != nil {
		firm.Profile.RecentTransactions = input.RecentTransactions
	}
	if input.Description != nil {
		firm.Profile.Description = *input.Description
	}
	if input.ContactPerson != nil {
		firm.Profile.ContactPerson = *input.ContactPerson
	}

	if err := s.firms.Update(ctx, firm); err != nil {
		return nil, err
	}
	return firm, nil
}

// ListFirms returns every firm for the syndicate-building directory.
func (s *FirmService) ListFirms(ctx context.Context) ([]domain.Firm, error) {
	return s.firms.ListAll(ctx)
}
