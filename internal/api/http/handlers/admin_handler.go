package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// AdminHandler manages the admin console endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

// ListFirms GET /api/admin/members/firms.
func (h *AdminHandler) ListFirms(c *fiber.Ctx) error {
	filter := repository.FirmFilter{
		Search: c.Query("search"),
		Limit:  parseIntQuery(c.Query("limit"), 20),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.FirmStatus(statusStr)
		filter.Status = &status
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.FirmRole(roleStr)
		filter.Role = &role
	}
	page := parseIntQuery(c.Query("page"), 1)

	result, err := h.service.ListFirms(c.UserContext(), filter, page)
	if err != nil {
		return err
	}

	firms := make([]dto.FirmResponse, 0, len(result.Firms))
	for i := range result.Firms {
		firms = append(firms, firmResponse(&result.Firms[i]))
	}
	return c.JSON(fiber.Map{"data": dto.FirmPageResponse{
		Firms:      firms,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}})
}

// GetFirmDetail GET /api/admin/members/firms/:id.
func (h *AdminHandler) GetFirmDetail(c *fiber.Ctx) error {
	detail, err := h.service.GetFirmDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FirmDetailResponse{
		Firm: firmResponse(detail.Firm),
		Activity: dto.FirmActivityResponse{
			Deals:               detail.Counts.Deals,
			SentInvitations:     detail.Counts.SentInvitations,
			ReceivedInvitations: detail.Counts.ReceivedInvitations,
			NDAs:                detail.Counts.NDAs,
		},
		Deals: dealResponses(detail.Deals),
	}})
}

// UpdateFirmStatus PATCH /api/admin/members/firms/:id/status.
func (h *AdminHandler) UpdateFirmStatus(c *fiber.Ctx) error {
	var req dto.UpdateFirmStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	firm, err := h.service.UpdateFirmStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": firmResponse(firm)})
}

// UpdateFirmRole PATCH /api/admin/members/firms/:id/role.
func (h *AdminHandler) UpdateFirmRole(c *fiber.Ctx) error {
	var req dto.UpdateFirmRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	firm, err := h.service.UpdateFirmRole(c.UserContext(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": firmResponse(firm)})
}

// DeleteFirm DELETE /api/admin/members/firms/:id.
func (h *AdminHandler) DeleteFirm(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	if err := h.service.DeleteFirm(c.UserContext(), principal.FirmID(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "firm deleted"})
}

// AnalyzeDeals GET /api/admin/analytics/deals.
func (h *AdminHandler) AnalyzeDeals(c *fiber.Ctx) error {
	timeframe := c.Query("timeframe", "30d")
	analytics, err := h.service.AnalyzeDeals(c.UserContext(), timeframe)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DealAnalyticsResponse{
		Timeframe:           timeframe,
		TotalDeals:          analytics.TotalDeals,
		TotalVolume:         analytics.TotalVolume,
		DealsByStatus:       analytics.DealsByStatus,
		DealsBySector:       analytics.DealsBySector,
		DealsByJurisdiction: analytics.DealsByJurisdiction,
	}})
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
