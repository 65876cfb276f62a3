package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// FirmFilter captures admin search parameters.
type FirmFilter struct {
	Search string
	Status *domain.FirmStatus
	Role   *domain.FirmRole
	Limit  int
	Offset int
}

// FirmActivityCounts summarizes a firm's platform activity.
type FirmActivityCounts struct {
	Deals               int
	SentInvitations     int
	ReceivedInvitations int
	NDAs                int
}

// FirmRepository encapsulates firm persistence.
type FirmRepository interface {
	Create(ctx context.Context, firm *domain.Firm) error
	Update(ctx context.Context, firm *domain.Firm) error
	UpdatePassword(ctx context.Context, q Querier, firmID, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.Firm, error)
	GetByEmail(ctx context.Context, email string) (*domain.Firm, error)
	ListAll(ctx context.Context) ([]domain.Firm, error)
	ListExcluding(ctx context.Context, firmID string) ([]domain.Firm, error)
	ListWithFilter(ctx context.Context, filter FirmFilter) ([]domain.Firm, int, error)
	CountActivity(ctx context.Context, firmID string) (*FirmActivityCounts, error)
	Delete(ctx context.Context, id string) error
}

type firmRepository struct {
	pool *pgxpool.Pool
}

// NewFirmRepository returns a Postgres-backed implementation.
func NewFirmRepository(pool *pgxpool.Pool) FirmRepository {
	return &firmRepository{pool: pool}
}

const firmColumns = `id, firm_name, email, password_hash, role, status, profile, created_at, updated_at`

func (r *firmRepository) Create(ctx context.Context, firm *domain.Firm) error {
	profile, err := json.Marshal(firm.Profile)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO firms (firm_name, email, password_hash, role, status, profile)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		firm.FirmName,
		firm.Email,
		firm.PasswordHash,
		firm.Role,
		firm.Status,
		profile,
	).Scan(&firm.ID, &firm.CreatedAt, &firm.UpdatedAt)
}

func (r *firmRepository) Update(ctx context.Context, firm *domain.Firm) error {
	profile, err := json.Marshal(firm.Profile)
	if err != nil {
		return err
	}
	const query = `
        UPDATE firms SET firm_name=$1, email=$2, role=$3, status=$4, profile=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		firm.FirmName,
		firm.Email,
		firm.Role,
		firm.Status,
		profile,
		firm.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *firmRepository) UpdatePassword(ctx context.Context, q Querier, firmID, passwordHash string) error {
	const query = `UPDATE firms SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := q.Exec(ctx, query, passwordHash, firmID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *firmRepository) GetByID(ctx context.Context, id string) (*domain.Firm, error) {
	query := fmt.Sprintf(`SELECT %s FROM firms WHERE id=$1`, firmColumns)
	return scanFirm(r.pool.QueryRow(ctx, query, id))
}

func (r *firmRepository) GetByEmail(ctx context.Context, email string) (*domain.Firm, error) {
	query := fmt.Sprintf(`SELECT %s FROM firms WHERE email=$1`, firmColumns)
	return scanFirm(r.pool.QueryRow(ctx, query, email))
}

func (r *firmRepository) ListAll(ctx context.Context) ([]domain.Firm, error) {
	query := fmt.Sprintf(`SELECT %s FROM firms ORDER BY firm_name`, firmColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFirms(rows)
}

func (r *firmRepository) ListExcluding(ctx context.Context, firmID string) ([]domain.Firm, error) {
	query := fmt.Sprintf(`SELECT %s FROM firms WHERE id <> $1 AND status = 'active' ORDER BY created_at`, firmColumns)
	rows, err := r.pool.Query(ctx, query, firmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFirms(rows)
}

func (r *firmRepository) ListWithFilter(ctx context.Context, filter FirmFilter) ([]domain.Firm, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(firm_name) LIKE %s OR LOWER(email) LIKE %s)", placeholder, placeholder))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM firms WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM firms WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		firmColumns, where, limit, offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	firms, err := scanFirms(rows)
	if err != nil {
		return nil, 0, err
	}
	return firms, total, nil
}

func (r *firmRepository) CountActivity(ctx context.Context, firmID string) (*FirmActivityCounts, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM deals WHERE owner_firm_id=$1),
            (SELECT COUNT(*) FROM invitations WHERE from_firm_id=$1),
            (SELECT COUNT(*) FROM invitations WHERE to_firm_id=$1),
            (SELECT COUNT(*) FROM ndas WHERE firm_id=$1)`

	var counts FirmActivityCounts
	if err := r.pool.QueryRow(ctx, query, firmID).Scan(
		&counts.Deals,
		&counts.SentInvitations,
		&counts.ReceivedInvitations,
		&counts.NDAs,
	); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *firmRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM firms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanFirm(row pgx.Row) (*domain.Firm, error) {
	var firm domain.Firm
	var profile []byte
	if err := row.Scan(
		&firm.ID,
		&firm.FirmName,
		&firm.Email,
		&firm.PasswordHash,
		&firm.Role,
		&firm.Status,
		&profile,
		&firm.CreatedAt,
		&firm.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &firm.Profile); err != nil {
			return nil, err
		}
	}
	return &firm, nil
}

func scanFirms(rows pgx.Rows) ([]domain.Firm, error) {
	var result []domain.Firm
	for rows.Next() {
		firm, err := scanFirm(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *firm)
	}
	return result, rows.Err()
}
