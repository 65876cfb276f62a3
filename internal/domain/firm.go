package domain

import "time"

// FirmRole enumerates platform roles for a firm account.
type FirmRole string

const (
	FirmRoleUser       FirmRole = "user"
	FirmRoleAdmin      FirmRole = "admin"
	FirmRoleSuperadmin FirmRole = "superadmin"
)

// FirmStatus represents lifecycle states for a firm account.
type FirmStatus string

const (
	FirmStatusActive    FirmStatus = "active"
	FirmStatusSuspended FirmStatus = "suspended"
	FirmStatusInactive  FirmStatus = "inactive"
)

// DealSizeRange bounds a firm's typical investment ticket.
type DealSizeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IsSet reports whether the firm has declared a meaningful range.
func (r DealSizeRange) IsSet() bool {
	return r.Min != 0 || r.Max != 0
}

// FirmProfile is the structured matching profile owned by a firm.
type FirmProfile struct {
	ContactPerson      string        `json:"contactPerson"`
	Jurisdictions      []string      `json:"jurisdictions"`
	SectorFocus        []string      `json:"sectorFocus"`
	TypicalDealSize    DealSizeRange `json:"typicalDealSize"`
	RecentTransactions []string      `json:"recentTransactions"`
	Description        string        `json:"description"`
}

// Firm is the aggregate for a registered corporate-finance firm.
type Firm struct {
	ID           string
	FirmName     string
	Email        string
	PasswordHash string
	Role         FirmRole
	Status       FirmStatus
	Profile      FirmProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the firm holds an admin-level role.
func (f *Firm) IsAdmin() bool {
	return f.Role == FirmRoleAdmin || f.Role == FirmRoleSuperadmin
}
