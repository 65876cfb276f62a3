package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// FirmsHandler manages firm profile endpoints.
type FirmsHandler struct {
	service *service.FirmService
}

// NewFirmsHandler constructs handler.
func NewFirmsHandler(firmService *service.FirmService) *FirmsHandler {
	return &FirmsHandler{service: firmService}
}

// GetProfile GET /api/firms/profile/:id.
func (h *FirmsHandler) GetProfile(c *fiber.Ctx) error {
	firm, err := h.service.GetFirm(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": firmResponse(firm)})
}

// UpdateProfile PUT /api/firms/profile updates the caller's own profile.
func (h *FirmsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	firm, err := h.service.UpdateProfile(c.UserContext(), principal.FirmID(), service.ProfileUpdateInput{
		Jurisdictions:      req.Jurisdictions,
		SectorFocus:        req.SectorFocus,
		TypicalDealSize:    req.TypicalDealSize,
		RecentTransactions: req.RecentTransactions,
		Description:        req.Description,
		ContactPerson:      req.ContactPerson,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": firmResponse(firm)})
}

// ListAll GET /api/firms/all.
func (h *FirmsHandler) ListAll(c *fiber.Ctx) error {
	firms, err := h.service.ListFirms(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.FirmResponse, 0, len(firms))
	for i := range firms {
		items = append(items, firmResponse(&firms[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
