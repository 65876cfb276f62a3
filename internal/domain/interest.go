package domain

import "time"

// InterestRegistration captures a pre-signup contact request from the
// public landing page.
type InterestRegistration struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Message   string
	CreatedAt time.Time
}
