package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/matching"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// DefaultSyndicateSize is used when the caller does not specify how
// many partners to recommend, or asks for a non-positive count.
const DefaultSyndicateSize = 5

// Recommendation is one ranked candidate for a deal's syndicate.
type Recommendation struct {
	FirmID   string             `json:"firmId"`
	FirmName string             `json:"firmName"`
	Score    int                `json:"score"`
	Reasons  []string           `json:"reasons"`
	Profile  domain.FirmProfile `json:"profile"`
}

// RecommendResult bundles the deal summary with its ranked candidates.
type RecommendResult struct {
	Deal            *domain.Deal     `json:"-"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SyndicateService ranks candidate firms for a deal and records the
// owner's selections.
type SyndicateService struct {
	deals    repository.DealRepository
	firms    repository.FirmRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// SyndicateDependencies bundles requirements for the syndicate service.
type SyndicateDependencies struct {
	DealRepo repository.DealRepository
	FirmRepo repository.FirmRepository
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// NewSyndicateService constructs the service.
func NewSyndicateService(deps SyndicateDependencies) *SyndicateService {
	return &SyndicateService{
		deals:    deps.DealRepo,
		firms:    deps.FirmRepo,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		logger:   deps.Logger,
	}
}

// Recommend scores every candidate firm against the deal and returns
// the top candidates, highest score first. Ties keep the candidates'
// input order, so repeated calls on unchanged data produce identical
// rankings. Only the deal owner may request recommendations; a deal
// that is absent or foreign is reported as not found without
// distinguishing the two cases.
func (s *SyndicateService) Recommend(ctx context.Context, ownerFirmID, dealID string, size int) (*RecommendResult, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
		}
		return nil, err
	}
	if deal.OwnerFirmID != ownerFirmID {
		return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
	}

	if size <= 0 {
		size = DefaultSyndicateSize
	}

	// The cache key carries the deal's update timestamp, so any deal
	// mutation naturally misses; profile edits are covered by the TTL.
	key := s.cacheKey(deal, size)
	if cached := s.cachedRecommendations(ctx, key); cached != nil {
		return &RecommendResult{Deal: deal, Recommendations: cached}, nil
	}

	candidates, err := s.firms.ListExcluding(ctx, ownerFirmID)
	if err != nil {
		return nil, err
	}

	recommendations := make([]Recommendation, 0, len(candidates))
	for i := range candidates {
		firm := &candidates[i]
		if firm.ID == ownerFirmID {
			// The query already excludes the owner; keep the guard so a
			// repository change can never recommend a deal to itself.
			continue
		}
		match := matching.Score(deal, firm.Profile)
		recommendations = append(recommendations, Recommendation{
			FirmID:   firm.ID,
			FirmName: firm.FirmName,
			Score:    match.Score,
			Reasons:  match.Reasons,
			Profile:  firm.Profile,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	if len(recommendations) > size {
		recommendations = recommendations[:size]
	}

	s.storeRecommendations(ctx, key, recommendations)
	return &RecommendResult{Deal: deal, Recommendations: recommendations}, nil
}

// BuildSyndicate records the owner's candidate selections on the deal
// and moves it into syndicate building. Selections are bookkeeping
// only; invitations are sent separately.
func (s *SyndicateService) BuildSyndicate(ctx context.Context, ownerFirmID, dealID string, selectedFirms []string) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
		}
		return nil, err
	}
	if deal.OwnerFirmID != ownerFirmID {
		return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
	}

	selections := make([]string, 0, len(selectedFirms))
	for _, firmID := range selectedFirms {
		if firmID == ownerFirmID {
			return nil, apperrors.NewValidationError("deal owner cannot be selected as a syndicate candidate", nil)
		}
		selections = append(selections, firmID)
	}

	return s.deals.SetInvitedFirms(ctx, dealID, selections, domain.DealStatusSyndicateBuilding)
}

func (s *SyndicateService) cacheKey(deal *domain.Deal, size int) string {
	return fmt.Sprintf("recommend:%s:%d:%d", deal.ID, deal.UpdatedAt.Unix(), size)
}

func (s *SyndicateService) cachedRecommendations(ctx context.Context, key string) []Recommendation {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var recommendations []Recommendation
	if err := json.Unmarshal(raw, &recommendations); err != nil {
		return nil
	}
	return recommendations
}

func (s *SyndicateService) storeRecommendations(ctx context.Context, key string, recommendations []Recommendation) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(recommendations)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("recommendation cache write failed", zap.Error(err))
	}
}
