package matching

import (
	"reflect"
	"testing"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

func fintechDeal() *domain.Deal {
	return &domain.Deal{
		ID:           "deal-1",
		Sector:       "Fintech",
		Jurisdiction: "UK",
		TargetAmount: 2_000_000,
	}
}

func TestScoreFullMatch(t *testing.T) {
	profile := domain.FirmProfile{
		Jurisdictions:      []string{"UK", "DE"},
		SectorFocus:        []string{"Fintech"},
		TypicalDealSize:    domain.DealSizeRange{Min: 1_000_000, Max: 5_000_000},
		RecentTransactions: []string{"DealX"},
	}

	match := Score(fintechDeal(), profile)
	if match.Score != 100 {
		t.Fatalf("expected score 100, got %d", match.Score)
	}
	want := []string{
		"Active in UK",
		"Specialized in Fintech sector",
		"Deal size matches typical investment range",
		"1 recent transactions",
	}
	if !reflect.DeepEqual(match.Reasons, want) {
		t.Fatalf("unexpected reasons: %v", match.Reasons)
	}
}

func TestScoreEmptyProfile(t *testing.T) {
	match := Score(fintechDeal(), domain.FirmProfile{})
	if match.Score != 0 {
		t.Fatalf("expected score 0, got %d", match.Score)
	}
	if len(match.Reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", match.Reasons)
	}
}

func TestScoreAcceptableSizeRange(t *testing.T) {
	// Amount below the declared minimum but above half of it.
	profile := domain.FirmProfile{
		TypicalDealSize: domain.DealSizeRange{Min: 3_000_000, Max: 10_000_000},
	}
	match := Score(fintechDeal(), profile)
	if match.Score != 15 {
		t.Fatalf("expected score 15, got %d", match.Score)
	}
	if match.Reasons[0] != "Deal size within acceptable range" {
		t.Fatalf("unexpected reason: %v", match.Reasons)
	}
}

func TestScoreSizeOutOfRange(t *testing.T) {
	profile := domain.FirmProfile{
		TypicalDealSize: domain.DealSizeRange{Min: 10_000_000, Max: 50_000_000},
	}
	match := Score(fintechDeal(), profile)
	if match.Score != 0 {
		t.Fatalf("expected score 0, got %d", match.Score)
	}
}

func TestScoreUnsetRangeSkipsSizeCriterion(t *testing.T) {
	// Registration defaults the range to {0,0}; the size criterion must
	// not fire for an undeclared range.
	profile := domain.FirmProfile{
		Jurisdictions: []string{"UK"},
	}
	match := Score(fintechDeal(), profile)
	if match.Score != 30 {
		t.Fatalf("expected score 30, got %d", match.Score)
	}
	if len(match.Reasons) != 1 {
		t.Fatalf("expected single reason, got %v", match.Reasons)
	}
}

func TestScoreDeterministic(t *testing.T) {
	profile := domain.FirmProfile{
		Jurisdictions:      []string{"UK"},
		SectorFocus:        []string{"Fintech"},
		RecentTransactions: []string{"A", "B", "C"},
	}
	first := Score(fintechDeal(), profile)
	for i := 0; i < 10; i++ {
		again := Score(fintechDeal(), profile)
		if again.Score != first.Score || !reflect.DeepEqual(again.Reasons, first.Reasons) {
			t.Fatalf("score not deterministic: %v vs %v", first, again)
		}
	}
	if first.Reasons[len(first.Reasons)-1] != "3 recent transactions" {
		t.Fatalf("unexpected track record reason: %v", first.Reasons)
	}
}

func TestScoreNeverExceedsBounds(t *testing.T) {
	profiles := []domain.FirmProfile{
		{},
		{Jurisdictions: []string{"UK"}, SectorFocus: []string{"Fintech"},
			TypicalDealSize:    domain.DealSizeRange{Min: 1, Max: 100_000_000},
			RecentTransactions: []string{"a", "b"}},
		{TypicalDealSize: domain.DealSizeRange{Min: -5, Max: -1}},
	}
	for _, profile := range profiles {
		match := Score(fintechDeal(), profile)
		if match.Score < 0 || match.Score > MaxScore {
			t.Fatalf("score %d out of bounds for profile %+v", match.Score, profile)
		}
	}
}
