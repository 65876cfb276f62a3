package domain

import "time"

// PasswordResetToken is a single-use reset credential. TokenHash holds
// the SHA-256 of the token emailed to the firm; the plaintext is never
// stored.
type PasswordResetToken struct {
	ID        string
	FirmID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
