package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// AdminService backs the operator console: member management and
// platform analytics.
type AdminService struct {
	firms repository.FirmRepository
	deals repository.DealRepository
}

// NewAdminService constructs the service.
func NewAdminService(firms repository.FirmRepository, deals repository.DealRepository) *AdminService {
	return &AdminService{firms: firms, deals: deals}
}

// FirmPage is one page of the member listing.
type FirmPage struct {
	Firms      []domain.Firm
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// FirmDetail is a firm plus its activity summary and deals.
type FirmDetail struct {
	Firm   *domain.Firm
	Counts *repository.FirmActivityCounts
	Deals  []domain.Deal
}

// DealAnalytics aggregates deal activity over a timeframe.
type DealAnalytics struct {
	TotalDeals          int
	TotalVolume         float64
	DealsByStatus       map[domain.DealStatus]int
	DealsBySector       map[string]int
	DealsByJurisdiction map[string]int
}

// ListFirms returns a filtered, paginated member listing.
func (s *AdminService) ListFirms(ctx context.Context, filter repository.FirmFilter, page int) (*FirmPage, error) {
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
		filter.Limit = limit
	}
	filter.Offset = (page - 1) * limit

	firms, total, err := s.firms.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalPages := (total + limit - 1) / limit
	return &FirmPage{Firms: firms, Total: total, Page: page, Limit: limit, TotalPages: totalPages}, nil
}

// GetFirmDetail returns one firm with activity counts and owned deals.
func (s *AdminService) GetFirmDetail(ctx context.Context, firmID string) (*FirmDetail, error) {
	firm, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("firm", map[string]any{"firm_id": firmID})
		}
		return nil, err
	}
	counts, err := s.firms.CountActivity(ctx, firmID)
	if err != nil {
		return nil, err
	}
	deals, err := s.deals.ListByOwner(ctx, firmID)
	if err != nil {
		return nil, err
	}
	return &FirmDetail{Firm: firm, Counts: counts, Deals: deals}, nil
}

// UpdateFirmStatus moves a firm between active, suspended and inactive.
func (s *AdminService) UpdateFirmStatus(ctx context.Context, firmID string, status domain.FirmStatus) (*domain.Firm, error) {
	switch status {
	case domain.FirmStatusActive, domain.FirmStatusSuspended, domain.FirmStatusInactive:
	default:
		return nil, apperrors.NewValidationError("invalid firm status", map[string]any{"status": status})
	}
	return s.mutateFirm(ctx, firmID, func(firm *domain.Firm) {
		firm.Status = status
	})
}

// UpdateFirmRole changes a firm's platform role. Superadmin only at the
// route layer.
func (s *AdminService) UpdateFirmRole(ctx context.Context, firmID string, role domain.FirmRole) (*domain.Firm, error) {
	switch role {
	case domain.FirmRoleUser, domain.FirmRoleAdmin, domain.FirmRoleSuperadmin:
	default:
		return nil, apperrors.NewValidationError("invalid firm role", map[string]any{"role": role})
	}
	return s.mutateFirm(ctx, firmID, func(firm *domain.Firm) {
		firm.Role = role
	})
}

// DeleteFirm hard-deletes a firm. Owned deals, invitations, NDAs and
// documents go with it through the schema's cascades.
func (s *AdminService) DeleteFirm(ctx context.Context, actorFirmID, firmID string) error {
	if actorFirmID == firmID {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.firms.Delete(ctx, firmID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("firm", map[string]any{"firm_id": firmID})
		}
		return err
	}
	return nil
}

// AnalyzeDeals aggregates deals created within the timeframe
// ("7d", "30d", "90d", "1y"; anything else means 30d).
func (s *AdminService) AnalyzeDeals(ctx context.Context, timeframe string) (*DealAnalytics, error) {
	since := time.Now()
	switch timeframe {
	case "7d":
		since = since.AddDate(0, 0, -7)
	case "90d":
		since = since.AddDate(0, 0, -90)
	case "1y":
		since = since.AddDate(-1, 0, 0)
	default:
		since = since.AddDate(0, 0, -30)
	}

	deals, err := s.deals.ListCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	analytics := &DealAnalytics{
		DealsByStatus:       make(map[domain.DealStatus]int),
		DealsBySector:       make(map[string]int),
		DealsByJurisdiction: make(map[string]int),
	}
	for _, deal := range deals {
		analytics.TotalDeals++
		analytics.TotalVolume += deal.TargetAmount
		analytics.DealsByStatus[deal.Status]++
		analytics.DealsBySector[deal.Sector]++
		analytics.DealsByJurisdiction[deal.Jurisdiction]++
	}
	return analytics, nil
}

func (s *AdminService) mutateFirm(ctx context.Context, firmID string, mutate func(*domain.Firm)) (*domain.Firm, error) {
	firm, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("firm", map[string]any{"firm_id": firmID})
		}
		return nil, err
	}
	mutate(firm)
	if err := s.firms.Update(ctx, firm); err != nil {
		return nil, err
	}
	return firm, nil
}
