package dto

import (
	"time"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// SendInvitationRequest payload.
type SendInvitationRequest struct {
	DealID   string `json:"dealId"`
	ToFirmID string `json:"toFirmId"`
	Message  string `json:"message"`
}

// RespondInvitationRequest payload.
type RespondInvitationRequest struct {
	InvitationID string `json:"invitationId"`
	Response     string `json:"response"`
	NDASigned    bool   `json:"ndaSigned"`
}

// InvitationResponse exposes a single invitation.
type InvitationResponse struct {
	ID          string                  `json:"id"`
	DealID      string                  `json:"dealId"`
	FromFirmID  string                  `json:"fromFirmId"`
	ToFirmID    string                  `json:"toFirmId"`
	Message     string                  `json:"message"`
	Status      domain.InvitationStatus `json:"status"`
	CreatedAt   time.Time               `json:"createdAt"`
	RespondedAt *time.Time              `json:"respondedAt"`
}

// InvitationListingResponse is an inbox/outbox row joined with deal and
// counterpart context.
type InvitationListingResponse struct {
	Invitation      InvitationResponse `json:"invitation"`
	DealName        string             `json:"dealName"`
	DealSector      string             `json:"dealSector"`
	CounterpartID   string             `json:"counterpartId"`
	CounterpartName string             `json:"counterpartName"`
}
