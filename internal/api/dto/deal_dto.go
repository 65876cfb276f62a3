package dto

import (
	"time"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// CreateDealRequest payload.
type CreateDealRequest struct {
	DealName              string  `json:"dealName"`
	Sector                string  `json:"sector"`
	Jurisdiction          string  `json:"jurisdiction"`
	DealType              string  `json:"dealType"`
	TargetAmount          float64 `json:"targetAmount"`
	Description           string  `json:"description"`
	TargetInvestorProfile string  `json:"targetInvestorProfile"`
}

// UpdateDealRequest is a partial deal update; absent fields keep their
// current value.
type UpdateDealRequest struct {
	DealName              *string            `json:"dealName"`
	Sector                *string            `json:"sector"`
	Jurisdiction          *string            `json:"jurisdiction"`
	DealType              *string            `json:"dealType"`
	TargetAmount          *float64           `json:"targetAmount"`
	Description           *string            `json:"description"`
	TargetInvestorProfile *string            `json:"targetInvestorProfile"`
	Status                *domain.DealStatus `json:"status"`
}

// DealResponse exposes full deal info to firms with access.
type DealResponse struct {
	ID                    string            `json:"id"`
	OwnerFirmID           string            `json:"ownerFirmId"`
	DealName              string            `json:"dealName"`
	Sector                string            `json:"sector"`
	Jurisdiction          string            `json:"jurisdiction"`
	DealType              string            `json:"dealType"`
	TargetAmount          float64           `json:"targetAmount"`
	Description           string            `json:"description"`
	TargetInvestorProfile string            `json:"targetInvestorProfile"`
	Status                domain.DealStatus `json:"status"`
	SyndicateMembers      []string          `json:"syndicateMembers"`
	InvitedFirms          []string          `json:"invitedFirms"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}
