package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// InvitationsHandler manages the invitation lifecycle endpoints.
type InvitationsHandler struct {
	service *service.InvitationService
}

// NewInvitationsHandler constructs handler.
func NewInvitationsHandler(invitationService *service.InvitationService) *InvitationsHandler {
	return &InvitationsHandler{service: invitationService}
}

// Send POST /api/invitations/send.
func (h *InvitationsHandler) Send(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	var req dto.SendInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DealID == "" || req.ToFirmID == "" {
		return apperrors.NewValidationError("dealId and toFirmId are required", nil)
	}

	result, err := h.service.Send(c.UserContext(), principal.FirmID(), req.DealID, req.ToFirmID, req.Message)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    invitationResponse(result.Invitation),
		"message": "invitation sent to " + result.ToFirmName,
	})
}

// Respond POST /api/invitations/respond.
func (h *InvitationsHandler) Respond(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	var req dto.RespondInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.InvitationID == "" {
		return apperrors.NewValidationError("invitationId is required", nil)
	}

	invitation, err := h.service.Respond(c.UserContext(), principal.FirmID(), req.InvitationID, domain.InvitationStatus(req.Response), req.NDASigned)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invitationResponse(invitation)})
}

// ListReceived GET /api/invitations/received.
func (h *InvitationsHandler) ListReceived(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	listings, err := h.service.ListReceived(c.UserContext(), principal.FirmID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invitationListingResponses(listings)})
}

// ListSent GET /api/invitations/sent.
func (h *InvitationsHandler) ListSent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("firm required")
	}
	listings, err := h.service.ListSent(c.UserContext(), principal.FirmID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invitationListingResponses(listings)})
}

func invitationResponse(invitation *domain.Invitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:          invitation.ID,
		DealID:      invitation.DealID,
		FromFirmID:  invitation.FromFirmID,
		ToFirmID:    invitation.ToFirmID,
		Message:     invitation.Message,
		Status:      invitation.Status,
		CreatedAt:   invitation.CreatedAt,
		RespondedAt: invitation.RespondedAt,
	}
}

func invitationListingResponses(listings []repository.InvitationListing) []dto.InvitationListingResponse {
	items := make([]dto.InvitationListingResponse, 0, len(listings))
	for i := range listings {
		listing := &listings[i]
		items = append(items, dto.InvitationListingResponse{
			Invitation:      invitationResponse(&listing.Invitation),
			DealName:        listing.DealName,
			DealSector:      listing.DealSector,
			CounterpartID:   listing.CounterpartID,
			CounterpartName: listing.CounterpartName,
		})
	}
	return items
}
