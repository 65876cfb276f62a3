package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// NDARepository encapsulates NDA persistence.
type NDARepository interface {
	Create(ctx context.Context, q Querier, dealID, firmID string) error
	GetByDealAndFirm(ctx context.Context, dealID, firmID string) (*domain.NDA, error)
	ListByDeal(ctx context.Context, dealID string) ([]domain.NDA, error)
	CountByFirm(ctx context.Context, firmID string) (int, error)
}

type ndaRepository struct {
	pool *pgxpool.Pool
}

// NewNDARepository returns a Postgres-backed implementation.
func NewNDARepository(pool *pgxpool.Pool) NDARepository {
	return &ndaRepository{pool: pool}
}

// Create records a signed NDA. The unique (deal_id, firm_id) constraint
// plus ON CONFLICT DO NOTHING makes the insert idempotent under
// replayed accepts.
func (r *ndaRepository) Create(ctx context.Context, q Querier, dealID, firmID string) error {
	const query = `
        INSERT INTO ndas (deal_id, firm_id)
        VALUES ($1, $2)
        ON CONFLICT (deal_id, firm_id) DO NOTHING`
	_, err := q.Exec(ctx, query, dealID, firmID)
	return err
}

func (r *ndaRepository) GetByDealAndFirm(ctx context.Context, dealID, firmID string) (*domain.NDA, error) {
	const query = `SELECT id, deal_id, firm_id, signed_at FROM ndas WHERE deal_id=$1 AND firm_id=$2`
	var nda domain.NDA
	if err := r.pool.QueryRow(ctx, query, dealID, firmID).Scan(
		&nda.ID,
		&nda.DealID,
		&nda.FirmID,
		&nda.SignedAt,
	); err != nil {
		return nil, err
	}
	return &nda, nil
}

func (r *ndaRepository) ListByDeal(ctx context.Context, dealID string) ([]domain.NDA, error) {
	const query = `SELECT id, deal_id, firm_id, signed_at FROM ndas WHERE deal_id=$1 ORDER BY signed_at`
	rows, err := r.pool.Query(ctx, query, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.NDA
	for rows.Next() {
		var nda domain.NDA
		if err := rows.Scan(&nda.ID, &nda.DealID, &nda.FirmID, &nda.SignedAt); err != nil {
			return nil, err
		}
		result = append(result, nda)
	}
	return result, rows.Err()
}

func (r *ndaRepository) CountByFirm(ctx context.Context, firmID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ndas WHERE firm_id=$1`, firmID).Scan(&count)
	return count, err
}
