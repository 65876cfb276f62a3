package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// InterestService records pre-signup interest from the public site.
type InterestService struct {
	registrations repository.InterestRepository
}

// NewInterestService constructs the service.
func NewInterestService(registrations repository.InterestRepository) *InterestService {
	return &InterestService{registrations: registrations}
}

// Register validates and stores an interest registration.
func (s *InterestService) Register(ctx context.Context, name, email, company, message string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(company) == "" {
		return apperrors.NewValidationError("name, email and company are required", nil)
	}
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("invalid email format", nil)
	}

	registration := &domain.InterestRegistration{
		Name:    name,
		Email:   email,
		Company: company,
		Message: message,
	}
	return s.registrations.Create(ctx, registration)
}

// ListAll returns all registrations, newest first. Admin only at the
// route layer.
func (s *InterestService) ListAll(ctx context.Context) ([]domain.InterestRegistration, error) {
	return s.registrations.ListAll(ctx)
}
