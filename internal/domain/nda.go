package domain

import "time"

// NDA records an electronic non-disclosure agreement signed by a firm
// for a deal. At most one NDA exists per (deal, firm) pair.
type NDA struct {
	ID       string
	DealID   string
	FirmID   string
	SignedAt time.Time
}
