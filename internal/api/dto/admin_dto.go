package dto

import "github.com/syndicate-plus/syndicate-service/internal/domain"

// UpdateFirmStatusRequest payload.
type UpdateFirmStatusRequest struct {
	Status domain.FirmStatus `json:"status"`
}

// UpdateFirmRoleRequest payload.
type UpdateFirmRoleRequest struct {
	Role domain.FirmRole `json:"role"`
}

// FirmPageResponse is one page of the member listing.
type FirmPageResponse struct {
	Firms      []FirmResponse `json:"firms"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// FirmActivityResponse summarizes a firm's platform activity.
type FirmActivityResponse struct {
	Deals               int `json:"deals"`
	SentInvitations     int `json:"sentInvitations"`
	ReceivedInvitations int `json:"receivedInvitations"`
	NDAs                int `json:"ndas"`
}

// FirmDetailResponse is a firm plus activity counts and its deals.
type FirmDetailResponse struct {
	Firm     FirmResponse         `json:"firm"`
	Activity FirmActivityResponse `json:"activity"`
	Deals    []DealResponse       `json:"deals"`
}

// DealAnalyticsResponse aggregates deal activity over a timeframe.
type DealAnalyticsResponse struct {
	Timeframe           string                    `json:"timeframe"`
	TotalDeals          int                       `json:"totalDeals"`
	TotalVolume         float64                   `json:"totalVolume"`
	DealsByStatus       map[domain.DealStatus]int `json:"dealsByStatus"`
	DealsBySector       map[string]int            `json:"dealsBySector"`
	DealsByJurisdiction map[string]int            `json:"dealsByJurisdiction"`
}
