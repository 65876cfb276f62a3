package dto

import (
	"time"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// FirmResponse exposes a firm's public fields. Credentials never leave
// the service layer.
type FirmResponse struct {
	ID        string             `json:"id"`
	FirmName  string             `json:"firmName"`
	Email     string             `json:"email"`
	Role      domain.FirmRole    `json:"role"`
	Status    domain.FirmStatus  `json:"status"`
	Profile   domain.FirmProfile `json:"profile"`
	CreatedAt time.Time          `json:"createdAt"`
}

// UpdateProfileRequest is a partial profile update; absent fields keep
// their current value.
type UpdateProfileRequest struct {
	Jurisdictions      []string              `json:"jurisdictions"`
	SectorFocus        []string              `json:"sectorFocus"`
	TypicalDealSize    *domain.DealSizeRange `json:"typicalDealSize"`
	RecentTransactions []string              `json:"recentTransactions"`
	Description        *string               `json:"description"`
	ContactPerson      *string               `json:"contactPerson"`
}
