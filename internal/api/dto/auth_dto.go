package dto

import "time"

// RegisterRequest payload.
type RegisterRequest struct {
	FirmName      string `json:"firmName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactPerson string `json:"contactPerson"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// AuthResponse carries the session token and the authenticated firm.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Firm      FirmResponse `json:"firm"`
}
