package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// DealsHandler manages deal CRUD endpoints.
type DealsHandler struct {
	service *service.DealService
}

// NewDealsHandler constructs handler.
func NewDealsHandler(dealService *service.DealService) *DealsHandler {
	return &DealsHandler{service: dealService}
}

// Create POST /api/deals/create.
func (h *DealsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	var req dto.CreateDealRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	deal, err := h.service.Create(c.UserContext(), principal.FirmID(), service.DealCreateInput{
		DealName:              req.DealName,
		Sector:                req.Sector,
		Jurisdiction:          req.Jurisdiction,
		DealType:              req.DealType,
		TargetAmount:          req.TargetAmount,
		Description:           req.Description,
		TargetInvestorProfile: req.TargetInvestorProfile,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dealResponse(deal)})
}

// ListOwn GET /api/deals/my-deals.
func (h *DealsHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	deals, err := h.service.ListOwn(c.UserContext(), principal.FirmID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dealResponses(deals)})
}

// ListInvited GET /api/deals/invited.
func (h *DealsHandler) ListInvited(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	deals, err := h.service.ListInvited(c.UserContext(), principal.FirmID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dealResponses(deals)})
}

// Get GET /api/deals/:id.
func (h *DealsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	deal, err := h.service.Get(c.UserContext(), principal.FirmID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dealResponse(deal)})
}

// Update PUT /api/deals/:id.
func (h *DealsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	var req dto.UpdateDealRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	deal, err := h.service.Update(c.UserContext(), principal.FirmID(), c.Params("id"), service.DealUpdateInput{
		DealName:              req.DealName,
		Sector:                req.Sector,
		Jurisdiction:          req.Jurisdiction,
		DealType:              req.DealType,
		TargetAmount:          req.TargetAmount,
		Description:           req.Description,
		TargetInvestorProfile: req.TargetInvestorProfile,
		Status:                req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dealResponse(deal)})
}

func dealResponse(deal *domain.Deal) dto.DealResponse {
	return dto.DealResponse{
		ID:                    deal.ID,
		OwnerFirmID:           deal.OwnerFirmID,
		DealName:              deal.DealName,
		Sector:                deal.Sector,
		Jurisdiction:          deal.Jurisdiction,
		DealType:              deal.DealType,
		TargetAmount:          deal.TargetAmount,
		Description:           deal.Description,
		TargetInvestorProfile: deal.TargetInvestorProfile,
		Status:                deal.Status,
		SyndicateMembers:      deal.SyndicateMembers,
		InvitedFirms:          deal.InvitedFirms,
		CreatedAt:             deal.CreatedAt,
		UpdatedAt:             deal.UpdatedAt,
	}
}

func dealResponses(deals []domain.Deal) []dto.DealResponse {
	items := make([]dto.DealResponse, 0, len(deals))
	for i := range deals {
		items = append(items, dealResponse(&deals[i]))
	}
	return items
}
