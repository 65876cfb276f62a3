package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/config"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/events"
	"github.com/syndicate-plus/syndicate-service/internal/persistence"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

const minPasswordLength = 8

// AuthService coordinates firm registration, login and password resets.
type AuthService struct {
	firms      repository.FirmRepository
	resets     repository.PasswordResetRepository
	tx         persistence.TxRunner
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
	baseURL    string
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	FirmRepo          repository.FirmRepository
	PasswordResetRepo repository.PasswordResetRepository
	TxRunner          persistence.TxRunner
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		firms:      deps.FirmRepo,
		resets:     deps.PasswordResetRepo,
		tx:         deps.TxRunner,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		baseURL:    cfg.App.BaseURL,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new firm account with an empty matching profile.
func (s *AuthService) Register(ctx context.Context, firmName, email, password, contactPerson string) (*domain.Firm, string, time.Time, error) {
	if _, err := s.firms.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("firm already registered with this email", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	firm := &domain.Firm{
		FirmName:     firmName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.FirmRoleUser,
		Status:       domain.FirmStatusActive,
		Profile: domain.FirmProfile{
			ContactPerson:      contactPerson,
			Jurisdictions:      []string{},
			SectorFocus:        []string{},
			RecentTransactions: []string{},
		},
	}
	if err := s.firms.Create(ctx, firm); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(firm.ID, firm.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventFirmRegistered,
		FirmID: firm.ID,
		Payload: events.FirmRegisteredPayload{
			FirmName: firm.FirmName,
			Email:    firm.Email,
		},
	})
	return firm, token, exp, nil
}

// Login authenticates a firm by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Firm, string, time.Time, error) {
	firm, err := s.firms.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(firm.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(firm.ID, firm.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return firm, token, exp, nil
}

// ForgotPassword issues a single-use reset token and hands the reset
// URL to the notification pipeline. The caller always receives the same
// outcome whether or not the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	firm, err := s.firms.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	plaintext := hex.EncodeToString(raw)

	if err := s.resets.DeleteUnusedForFirm(ctx, firm.ID); err != nil {
		return err
	}
	token := &domain.PasswordResetToken{
		FirmID:    firm.ID,
		TokenHash: hashResetToken(plaintext),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventPasswordResetIssued,
		FirmID: firm.ID,
		Payload: events.PasswordResetIssuedPayload{
			Email:    firm.Email,
			FirmName: firm.FirmName,
			ResetURL: fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, plaintext),
		},
	})
	return nil
}

// ResetPassword consumes a valid reset token and replaces the firm's
// password. Token consumption and the password change commit together.
func (s *AuthService) ResetPassword(ctx context.Context, plaintext, newPassword string) error {
	if plaintext == "" || newPassword == "" {
		return apperrors.NewValidationError("token and new password are required", nil)
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters long", nil)
	}

	token, err := s.resets.GetValidByHash(ctx, hashResetToken(plaintext))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("invalid or expired password reset token", nil)
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.firms.UpdatePassword(ctx, tx, token.FirmID, hash); err != nil {
			return err
		}
		return s.resets.MarkUsed(ctx, tx, token.ID)
	})
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func hashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
