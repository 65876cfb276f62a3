package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// InterestHandler manages public interest registrations.
type InterestHandler struct {
	service *service.InterestService
}

// NewInterestHandler constructs handler.
func NewInterestHandler(interestService *service.InterestService) *InterestHandler {
	return &InterestHandler{service: interestService}
}

// Register POST /api/interest/register. Public endpoint.
func (h *InterestHandler) Register(c *fiber.Ctx) error {
	var req dto.InterestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Company, req.Message); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "interest registered"})
}

// ListAll GET /api/interest/all. Admin only.
func (h *InterestHandler) ListAll(c *fiber.Ctx) error {
	registrations, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.InterestResponse, 0, len(registrations))
	for _, reg := range registrations {
		items = append(items, dto.InterestResponse{
			ID:        reg.ID,
			Name:      reg.Name,
			Email:     reg.Email,
			Company:   reg.Company,
			Message:   reg.Message,
			CreatedAt: reg.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
