package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// InterestRepository stores pre-signup interest registrations.
type InterestRepository interface {
	Create(ctx context.Context, registration *domain.InterestRegistration) error
	ListAll(ctx context.Context) ([]domain.InterestRegistration, error)
}

type interestRepository struct {
	pool *pgxpool.Pool
}

// NewInterestRepository returns a Postgres-backed implementation.
func NewInterestRepository(pool *pgxpool.Pool) InterestRepository {
	return &interestRepository{pool: pool}
}

func (r *interestRepository) Create(ctx context.Context, registration *domain.InterestRegistration) error {
	const query = `
        INSERT INTO interest_registrations (name, email, company, message)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		registration.Name,
		registration.Email,
		registration.Company,
		registration.Message,
	).Scan(&registration.ID, &registration.CreatedAt)
}

func (r *interestRepository) ListAll(ctx context.Context) ([]domain.InterestRegistration, error) {
	const query = `
        SELECT id, name, email, company, message, created_at
        FROM interest_registrations ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InterestRegistration
	for rows.Next() {
		var reg domain.InterestRegistration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Company, &reg.Message, &reg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}
