package dto

import "github.com/syndicate-plus/syndicate-service/internal/domain"

// RecommendRequest payload.
type RecommendRequest struct {
	DealID        string `json:"dealId"`
	SyndicateSize int    `json:"syndicateSize"`
}

// BuildSyndicateRequest payload.
type BuildSyndicateRequest struct {
	DealID        string   `json:"dealId"`
	SelectedFirms []string `json:"selectedFirms"`
}

// RecommendationResponse is one ranked syndicate candidate.
type RecommendationResponse struct {
	FirmID   string             `json:"firmId"`
	FirmName string             `json:"firmName"`
	Score    int                `json:"score"`
	Reasons  []string           `json:"reasons"`
	Profile  domain.FirmProfile `json:"profile"`
}

// RecommendDealSummary is the deal header echoed with recommendations.
type RecommendDealSummary struct {
	ID           string  `json:"id"`
	DealName     string  `json:"dealName"`
	Sector       string  `json:"sector"`
	TargetAmount float64 `json:"targetAmount"`
}

// RecommendResponse bundles the deal with its ranked candidates.
type RecommendResponse struct {
	Deal            RecommendDealSummary     `json:"deal"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}
