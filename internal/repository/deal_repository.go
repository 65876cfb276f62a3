package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// DealRepository encapsulates deal persistence.
type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	Update(ctx context.Context, deal *domain.Deal) error
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	ListByOwner(ctx context.Context, ownerFirmID string) ([]domain.Deal, error)
	ListInvited(ctx context.Context, firmID string) ([]domain.Deal, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Deal, error)
	SetInvitedFirms(ctx context.Context, dealID string, invitedFirms []string, status domain.DealStatus) (*domain.Deal, error)
	AddSyndicateMember(ctx context.Context, q Querier, dealID, firmID string) error
}

type dealRepository struct {
	pool *pgxpool.Pool
}

// NewDealRepository returns a Postgres-backed implementation.
func NewDealRepository(pool *pgxpool.Pool) DealRepository {
	return &dealRepository{pool: pool}
}

const dealColumns = `id, owner_firm_id, deal_name, sector, jurisdiction, deal_type, target_amount,
               description, target_investor_profile, status, syndicate_members, invited_firms,
               created_at, updated_at`

func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	const query = `
        INSERT INTO deals (owner_firm_id, deal_name, sector, jurisdiction, deal_type, target_amount,
                           description, target_investor_profile, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, syndicate_members, invited_firms, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		deal.OwnerFirmID,
		deal.DealName,
		deal.Sector,
		deal.Jurisdiction,
		deal.DealType,
		deal.TargetAmount,
		deal.Description,
		deal.TargetInvestorProfile,
		deal.Status,
	).Scan(&deal.ID, &deal.SyndicateMembers, &deal.InvitedFirms, &deal.CreatedAt, &deal.UpdatedAt)
}

func (r *dealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	const query = `
        UPDATE deals SET deal_name=$1, sector=$2, jurisdiction=$3, deal_type=$4, target_amount=$5,
            description=$6, target_investor_profile=$7, status=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		deal.DealName,
		deal.Sector,
		deal.Jurisdiction,
		deal.DealType,
		deal.TargetAmount,
		deal.Description,
		deal.TargetInvestorProfile,
		deal.Status,
		deal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *dealRepository) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	query := fmt.Sprintf(`SELECT %s FROM deals WHERE id=$1`, dealColumns)
	return scanDeal(r.pool.QueryRow(ctx, query, id))
}

func (r *dealRepository) ListByOwner(ctx context.Context, ownerFirmID string) ([]domain.Deal, error) {
	query := fmt.Sprintf(`SELECT %s FROM deals WHERE owner_firm_id=$1 ORDER BY created_at DESC`, dealColumns)
	rows, err := r.pool.Query(ctx, query, ownerFirmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

func (r *dealRepository) ListInvited(ctx context.Context, firmID string) ([]domain.Deal, error) {
	query := fmt.Sprintf(`SELECT %s FROM deals WHERE $1 = ANY(invited_firms) ORDER BY created_at DESC`, dealColumns)
	rows, err := r.pool.Query(ctx, query, firmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

func (r *dealRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Deal, error) {
	query := fmt.Sprintf(`SELECT %s FROM deals WHERE created_at >= $1 ORDER BY created_at DESC`, dealColumns)
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

func (r *dealRepository) SetInvitedFirms(ctx context.Context, dealID string, invitedFirms []string, status domain.DealStatus) (*domain.Deal, error) {
	query := fmt.Sprintf(`
        UPDATE deals SET invited_firms=$1, status=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING %s`, dealColumns)
	if invitedFirms == nil {
		invitedFirms = []string{}
	}
	return scanDeal(r.pool.QueryRow(ctx, query, invitedFirms, status, dealID))
}

// AddSyndicateMember appends firmID to the deal's syndicate with set
// semantics: the guarded UPDATE is a no-op when the firm is already a
// member, so concurrent accepts cannot double-insert.
func (r *dealRepository) AddSyndicateMember(ctx context.Context, q Querier, dealID, firmID string) error {
	const query = `
        UPDATE deals
        SET syndicate_members = array_append(syndicate_members, $1), updated_at=NOW()
        WHERE id=$2 AND NOT ($1 = ANY(syndicate_members))`
	_, err := q.Exec(ctx, query, firmID, dealID)
	return err
}

func scanDeal(row pgx.Row) (*domain.Deal, error) {
	var deal domain.Deal
	if err := row.Scan(
		&deal.ID,
		&deal.OwnerFirmID,
		&deal.DealName,
		&deal.Sector,
		&deal.Jurisdiction,
		&deal.DealType,
		&deal.TargetAmount,
		&deal.Description,
		&deal.TargetInvestorProfile,
		&deal.Status,
		&deal.SyndicateMembers,
		&deal.InvitedFirms,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &deal, nil
}

func scanDeals(rows pgx.Rows) ([]domain.Deal, error) {
	var result []domain.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *deal)
	}
	return result, rows.Err()
}
