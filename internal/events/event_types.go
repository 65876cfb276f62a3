package events

import (
	"time"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFirmRegistered      EventType = "firm_registered"
	EventDealCreated         EventType = "deal_created"
	EventInvitationSent      EventType = "invitation_sent"
	EventInvitationAccepted  EventType = "invitation_accepted"
	EventInvitationDeclined  EventType = "invitation_declined"
	EventNDASigned           EventType = "nda_signed"
	EventPasswordResetIssued EventType = "password_reset_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	FirmID    string      `json:"firm_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FirmRegisteredPayload payload.
type FirmRegisteredPayload struct {
	FirmName string `json:"firm_name"`
	Email    string `json:"email"`
}

// DealCreatedPayload payload.
type DealCreatedPayload struct {
	DealID       string  `json:"deal_id"`
	DealName     string  `json:"deal_name"`
	Sector       string  `json:"sector"`
	Jurisdiction string  `json:"jurisdiction"`
	TargetAmount float64 `json:"target_amount"`
}

// InvitationSentPayload payload.
type InvitationSentPayload struct {
	InvitationID string `json:"invitation_id"`
	DealID       string `json:"deal_id"`
	ToFirmID     string `json:"to_firm_id"`
	ToFirmName   string `json:"to_firm_name"`
}

// InvitationRespondedPayload payload for accepted/declined events.
type InvitationRespondedPayload struct {
	InvitationID string                  `json:"invitation_id"`
	DealID       string                  `json:"deal_id"`
	Status       domain.InvitationStatus `json:"status"`
	NDASigned    bool                    `json:"nda_signed"`
}

// NDASignedPayload payload.
type NDASignedPayload struct {
	DealID string `json:"deal_id"`
	FirmID string `json:"firm_id"`
}

// PasswordResetIssuedPayload payload. ResetURL embeds the plaintext
// token and is only ever handed to the mailer.
type PasswordResetIssuedPayload struct {
	Email    string `json:"email"`
	FirmName string `json:"firm_name"`
	ResetURL string `json:"reset_url"`
}
