// Package matching scores a candidate firm against a deal. Scoring is a
// pure function over the deal terms and the firm's declared profile; the
// same inputs always produce the same score and the same reason list.
package matching

import (
	"fmt"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// MaxScore is the highest attainable match score.
const MaxScore = 100

// Scoring weights per criterion.
const (
	jurisdictionPoints   = 30
	sectorPoints         = 35
	sizeInRangePoints    = 25
	sizeAcceptablePoints = 15
	trackRecordPoints    = 10
)

// Match is the scored result for one candidate firm.
type Match struct {
	Score   int
	Reasons []string
}

// Score evaluates how well a firm's profile fits a deal. Criteria are
// applied in a fixed order (jurisdiction, sector, deal size, track
// record) and the reason list mirrors that order. Empty profile fields
// contribute nothing.
func Score(deal *domain.Deal, profile domain.FirmProfile) Match {
	match := Match{Reasons: []string{}}

	if contains(profile.Jurisdictions, deal.Jurisdiction) {
		match.Score += jurisdictionPoints
		match.Reasons = append(match.Reasons, fmt.Sprintf("Active in %s", deal.Jurisdiction))
	}

	if contains(profile.SectorFocus, deal.Sector) {
		match.Score += sectorPoints
		match.Reasons = append(match.Reasons, fmt.Sprintf("Specialized in %s sector", deal.Sector))
	}

	if profile.TypicalDealSize.IsSet() {
		amount := deal.TargetAmount
		min, max := profile.TypicalDealSize.Min, profile.TypicalDealSize.Max
		switch {
		case amount >= min && amount <= max:
			match.Score += sizeInRangePoints
			match.Reasons = append(match.Reasons, "Deal size matches typical investment range")
		case amount < max && amount > min*0.5:
			match.Score += sizeAcceptablePoints
			match.Reasons = append(match.Reasons, "Deal size within acceptable range")
		}
	}

	if n := len(profile.RecentTransactions); n > 0 {
		match.Score += trackRecordPoints
		match.Reasons = append(match.Reasons, fmt.Sprintf("%d recent transactions", n))
	}

	return match
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
