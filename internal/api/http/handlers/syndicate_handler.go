package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// SyndicateHandler manages recommendation and syndicate building.
type SyndicateHandler struct {
	service *service.SyndicateService
}

// NewSyndicateHandler constructs handler.
func NewSyndicateHandler(syndicateService *service.SyndicateService) *SyndicateHandler {
	return &SyndicateHandler{service: syndicateService}
}

// Recommend POST /api/syndicate/recommend.
func (h *SyndicateHandler) Recommend(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	var req dto.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DealID == "" {
		return apperrors.NewValidationError("dealId is required", nil)
	}

	result, err := h.service.Recommend(c.UserContext(), principal.FirmID(), req.DealID, req.SyndicateSize)
	if err != nil {
		return err
	}

	recommendations := make([]dto.RecommendationResponse, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		recommendations = append(recommendations, dto.RecommendationResponse{
			FirmID:   rec.FirmID,
			FirmName: rec.FirmName,
			Score:    rec.Score,
			Reasons:  rec.Reasons,
			Profile:  rec.Profile,
		})
	}
	return c.JSON(fiber.Map{"data": dto.RecommendResponse{
		Deal: dto.RecommendDealSummary{
			ID:           result.Deal.ID,
			DealName:     result.Deal.DealName,
			Sector:       result.Deal.Sector,
			TargetAmount: result.Deal.TargetAmount,
		},
		Recommendations: recommendations,
	}})
}

// Build POST /api/syndicate/build.
func (h *SyndicateHandler) Build(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	var req dto.BuildSyndicateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DealID == "" {
		return apperrors.NewValidationError("dealId is required", nil)
	}

	deal, err := h.service.BuildSyndicate(c.UserContext(), principal.FirmID(), req.DealID, req.SelectedFirms)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dealResponse(deal)})
}
