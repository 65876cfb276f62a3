package domain

import "time"

// InvitationStatus enumerates invitation states. Accepted and declined
// are terminal; there is no transition out of either.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// IsTerminal reports whether the status permits no further transition.
func (s InvitationStatus) IsTerminal() bool {
	return s == InvitationStatusAccepted || s == InvitationStatusDeclined
}

// Invitation asks a candidate firm to join a deal's syndicate.
type Invitation struct {
	ID          string
	DealID      string
	FromFirmID  string
	ToFirmID    string
	Message     string
	Status      InvitationStatus
	CreatedAt   time.Time
	RespondedAt *time.Time
}
