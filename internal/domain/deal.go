package domain

import "time"

// DealStatus enumerates lifecycle states for deals.
type DealStatus string

const (
	DealStatusDraft             DealStatus = "draft"
	DealStatusSyndicateBuilding DealStatus = "syndicate_building"
	DealStatusActive            DealStatus = "active"
	DealStatusClosed            DealStatus = "closed"
)

// Deal is the aggregate for a transaction seeking syndicate partners.
// SyndicateMembers holds the firms that accepted an invitation and signed
// the NDA; InvitedFirms records the owner's selections from the syndicate
// builder. The owner firm never appears in either list.
type Deal struct {
	ID                    string
	OwnerFirmID           string
	DealName              string
	Sector                string
	Jurisdiction          string
	DealType              string
	TargetAmount          float64
	Description           string
	TargetInvestorProfile string
	Status                DealStatus
	SyndicateMembers      []string
	InvitedFirms          []string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasMember reports whether firmID is part of the deal's syndicate.
func (d *Deal) HasMember(firmID string) bool {
	for _, id := range d.SyndicateMembers {
		if id == firmID {
			return true
		}
	}
	return false
}

// CanAccess reports whether firmID may read the deal (owner or member).
func (d *Deal) CanAccess(firmID string) bool {
	return d.OwnerFirmID == firmID || d.HasMember(firmID)
}
