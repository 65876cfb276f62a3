package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/events"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// DealService manages deal records on behalf of their owning firms.
type DealService struct {
	deals      repository.DealRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDealService constructs the service.
func NewDealService(deals repository.DealRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DealService {
	return &DealService{deals: deals, dispatcher: dispatcher, logger: logger}
}

// DealCreateInput describes deal creation payload.
type DealCreateInput struct {
	DealName              string
	Sector                string
	Jurisdiction          string
	DealType              string
	TargetAmount          float64
	Description           string
	TargetInvestorProfile string
}

// DealUpdateInput carries a partial deal update. Nil fields keep their
// current value.
type DealUpdateInput struct {
	DealName              *string
	Sector                *string
	Jurisdiction          *string
	DealType              *string
	TargetAmount          *float64
	Description           *string
	TargetInvestorProfile *string
	Status                *domain.DealStatus
}

// Create validates and persists a new deal owned by the calling firm.
func (s *DealService) Create(ctx context.Context, ownerFirmID string, input DealCreateInput) (*domain.Deal, error) {
	if strings.TrimSpace(input.DealName) == "" ||
		strings.TrimSpace(input.Sector) == "" ||
		strings.TrimSpace(input.Jurisdiction) == "" ||
		strings.TrimSpace(input.DealType) == "" {
		return nil, apperrors.NewValidationError("dealName, sector, jurisdiction and dealType are required", nil)
	}
	if input.TargetAmount <= 0 {
		return nil, apperrors.NewValidationError("target amount must be a positive number", nil)
	}

	deal := &domain.Deal{
		OwnerFirmID:           ownerFirmID,
		DealName:              strings.TrimSpace(input.DealName),
		Sector:                input.Sector,
		Jurisdiction:          input.Jurisdiction,
		DealType:              input.DealType,
		TargetAmount:          input.TargetAmount,
		Description:           input.Description,
		TargetInvestorProfile: input.TargetInvestorProfile,
		Status:                domain.DealStatusDraft,
	}
	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventDealCreated,
		FirmID: ownerFirmID,
		Payload: events.DealCreatedPayload{
			DealID:       deal.ID,
			DealName:     deal.DealName,
			Sector:       deal.Sector,
			Jurisdiction: deal.Jurisdiction,
			TargetAmount: deal.TargetAmount,
		},
	})
	return deal, nil
}

// ListOwn returns deals owned by the firm.
func (s *DealService) ListOwn(ctx context.Context, firmID string) ([]domain.Deal, error) {
	return s.deals.ListByOwner(ctx, firmID)
}

// ListInvited returns deals where the firm appears in the owner's
// syndicate selections.
func (s *DealService) ListInvited(ctx context.Context, firmID string) ([]domain.Deal, error) {
	return s.deals.ListInvited(ctx, firmID)
}

// Get fetches a deal readable by the caller: its owner or a syndicate
// member.
func (s *DealService) Get(ctx context.Context, callerFirmID, dealID string) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
		}
		return nil, err
	}
	if !deal.CanAccess(callerFirmID) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return deal, nil
}

// Update applies a partial update to a deal owned by the caller.
func (s *DealService) Update(ctx context.Context, callerFirmID, dealID string, input DealUpdateInput) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
		}
		return nil, err
	}
	if deal.OwnerFirmID != callerFirmID {
		return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
	}

	if input.DealName != nil {
		deal.DealName = strings.TrimSpace(*input.DealName)
	}
	if input.Sector != nil {
		deal.Sector = *input.Sector
	}
	if input.Jurisdiction != nil {
		deal.Jurisdiction = *input.Jurisdiction
	}
	if input.DealType != nil {
		deal.DealType = *input.DealType
	}
	if input.TargetAmount != nil {
		if *input.TargetAmount <= 0 {
			return nil, apperrors.NewValidationError("target amount must be a positive number", nil)
		}
		deal.TargetAmount = *input.TargetAmount
	}
	if input.Description != nil {
		deal.Description = *input.Description
	}
	if input.TargetInvestorProfile != nil {
		deal.TargetInvestorProfile = *input.TargetInvestorProfile
	}
	if input.Status != nil {
		deal.Status = *input.Status
	}

	if err := s.deals.Update(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *DealService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
