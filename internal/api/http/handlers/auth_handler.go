package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/dto"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// AuthHandler manages registration, login and password resets.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.FirmName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("firmName, email and password are required", nil)
	}

	firm, token, exp, err := h.service.Register(c.UserContext(), req.FirmName, req.Email, req.Password, req.ContactPerson)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": authResponse(firm, token, exp)})
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	firm, token, exp, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(firm, token, exp)})
}

// ForgotPassword POST /api/auth/forgot-password. The response does not
// reveal whether the email is registered.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("email is required", nil)
	}

	if err := h.service.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "if the email is registered, a reset link has been sent"})
}

// ResetPassword POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password has been reset"})
}

func authResponse(firm *domain.Firm, token string, exp time.Time) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		Firm:      firmResponse(firm),
	}
}

func firmResponse(firm *domain.Firm) dto.FirmResponse {
	return dto.FirmResponse{
		ID:        firm.ID,
		FirmName:  firm.FirmName,
		Email:     firm.Email,
		Role:      firm.Role,
		Status:    firm.Status,
		Profile:   firm.Profile,
		CreatedAt: firm.CreatedAt,
	}
}
