package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

func candidateFirm(id, name, jurisdiction, sector string) *domain.Firm {
	return &domain.Firm{
		ID:       id,
		FirmName: name,
		Status:   domain.FirmStatusActive,
		Profile: domain.FirmProfile{
			Jurisdictions: []string{jurisdiction},
			SectorFocus:   []string{sector},
		},
	}
}

func newSyndicateFixture(t *testing.T, firms ...*domain.Firm) (*SyndicateService, *fakeDealRepo) {
	t.Helper()
	owner := &domain.Firm{ID: "owner", FirmName: "Alpha Advisors", Status: domain.FirmStatusActive}
	deal := &domain.Deal{
		ID:           "deal-1",
		OwnerFirmID:  "owner",
		DealName:     "Project Comet",
		Sector:       "technology",
		Jurisdiction: "UK",
		TargetAmount: 10_000_000,
		Status:       domain.DealStatusDraft,
	}
	deals := newFakeDealRepo(deal)

	all := append([]*domain.Firm{owner}, firms...)
	svc := NewSyndicateService(SyndicateDependencies{
		DealRepo: deals,
		FirmRepo: newFakeFirmRepo(all...),
		Logger:   zap.NewNop(),
	})
	return svc, deals
}

func TestRecommendRanksByScoreDescending(t *testing.T) {
	svc, _ := newSyndicateFixture(t,
		candidateFirm("low", "Low Match", "FR", "energy"),
		candidateFirm("high", "High Match", "UK", "technology"),
		candidateFirm("mid", "Mid Match", "UK", "energy"),
	)

	result, err := svc.Recommend(context.Background(), "owner", "deal-1", 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(result.Recommendations))
	}
	for i := 1; i < len(result.Recommendations); i++ {
		if result.Recommendations[i-1].Score < result.Recommendations[i].Score {
			t.Fatalf("recommendations out of order at %d: %d < %d",
				i, result.Recommendations[i-1].Score, result.Recommendations[i].Score)
		}
	}
	if result.Recommendations[0].FirmID != "high" {
		t.Fatalf("expected high match first, got %s", result.Recommendations[0].FirmID)
	}
}

func TestRecommendExcludesOwner(t *testing.T) {
	svc, _ := newSyndicateFixture(t, candidateFirm("other", "Other", "UK", "technology"))

	result, err := svc.Recommend(context.Background(), "owner", "deal-1", 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.FirmID == "owner" {
			t.Fatal("owner must never be recommended to itself")
		}
	}
}

func TestRecommendDefaultsSize(t *testing.T) {
	firms := make([]*domain.Firm, 0, 8)
	for i := 0; i < 8; i++ {
		firms = append(firms, candidateFirm(
			string(rune('a'+i)), "Firm", "UK", "technology"))
	}
	svc, _ := newSyndicateFixture(t, firms...)

	result, err := svc.Recommend(context.Background(), "owner", "deal-1", 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != DefaultSyndicateSize {
		t.Fatalf("expected %d recommendations, got %d", DefaultSyndicateSize, len(result.Recommendations))
	}
}

func TestRecommendTruncatesToRequestedSize(t *testing.T) {
	svc, _ := newSyndicateFixture(t,
		candidateFirm("a", "A", "UK", "technology"),
		candidateFirm("b", "B", "UK", "technology"),
		candidateFirm("c", "C", "UK", "technology"),
	)

	result, err := svc.Recommend(context.Background(), "owner", "deal-1", 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(result.Recommendations))
	}
}

func TestRecommendForeignDealReportsNotFound(t *testing.T) {
	svc, _ := newSyndicateFixture(t, candidateFirm("other", "Other", "UK", "technology"))

	_, err := svc.Recommend(context.Background(), "other", "deal-1", 5)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestRecommendMissingDealReportsNotFound(t *testing.T) {
	svc, _ := newSyndicateFixture(t)

	_, err := svc.Recommend(context.Background(), "owner", "no-such-deal", 5)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestBuildSyndicateRecordsSelections(t *testing.T) {
	svc, deals := newSyndicateFixture(t,
		candidateFirm("a", "A", "UK", "technology"),
		candidateFirm("b", "B", "UK", "technology"),
	)

	deal, err := svc.BuildSyndicate(context.Background(), "owner", "deal-1", []string{"a", "b"})
	if err != nil {
		t.Fatalf("BuildSyndicate: %v", err)
	}
	if deal.Status != domain.DealStatusSyndicateBuilding {
		t.Fatalf("expected syndicate_building, got %s", deal.Status)
	}
	stored, _ := deals.GetByID(context.Background(), "deal-1")
	if len(stored.InvitedFirms) != 2 {
		t.Fatalf("expected 2 invited firms, got %d", len(stored.InvitedFirms))
	}
}

func TestBuildSyndicateRejectsOwnerSelection(t *testing.T) {
	svc, _ := newSyndicateFixture(t, candidateFirm("a", "A", "UK", "technology"))

	_, err := svc.BuildSyndicate(context.Background(), "owner", "deal-1", []string{"a", "owner"})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestBuildSyndicateByNonOwnerReportsNotFound(t *testing.T) {
	svc, _ := newSyndicateFixture(t, candidateFirm("a", "A", "UK", "technology"))

	_, err := svc.BuildSyndicate(context.Background(), "a", "deal-1", []string{"owner"})
	assertDomainCode(t, err, "NOT_FOUND")
}
