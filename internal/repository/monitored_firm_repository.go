package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// MonitoredFirmRepository tracks external firms under enrichment.
type MonitoredFirmRepository interface {
	Create(ctx context.Context, firm *domain.MonitoredFirm) error
	GetByID(ctx context.Context, id string) (*domain.MonitoredFirm, error)
	ListStale(ctx context.Context, limit int) ([]domain.MonitoredFirm, error)
	TouchDataUpdate(ctx context.Context, id string) error
}

type monitoredFirmRepository struct {
	pool *pgxpool.Pool
}

// NewMonitoredFirmRepository returns a Postgres-backed implementation.
func NewMonitoredFirmRepository(pool *pgxpool.Pool) MonitoredFirmRepository {
	return &monitoredFirmRepository{pool: pool}
}

const monitoredFirmColumns = `id, firm_name, country, registration_number, firm_type, website, headquarters, last_data_update, created_at`

func (r *monitoredFirmRepository) Create(ctx context.Context, firm *domain.MonitoredFirm) error {
	const query = `
        INSERT INTO monitored_firms (firm_name, country, registration_number, firm_type, website, headquarters)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		firm.FirmName,
		firm.Country,
		firm.RegistrationNumber,
		firm.FirmType,
		firm.Website,
		firm.Headquarters,
	).Scan(&firm.ID, &firm.CreatedAt)
}

func (r *monitoredFirmRepository) GetByID(ctx context.Context, id string) (*domain.MonitoredFirm, error) {
	query := `SELECT ` + monitoredFirmColumns + ` FROM monitored_firms WHERE id=$1`
	return scanMonitoredFirm(r.pool.QueryRow(ctx, query, id))
}

// ListStale returns monitored firms whose data has never been refreshed
// or is older than 24 hours, oldest first.
func (r *monitoredFirmRepository) ListStale(ctx context.Context, limit int) ([]domain.MonitoredFirm, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
        SELECT ` + monitoredFirmColumns + `
        FROM monitored_firms
        WHERE last_data_update IS NULL OR last_data_update < NOW() - INTERVAL '24 hours'
        ORDER BY last_data_update NULLS FIRST
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MonitoredFirm
	for rows.Next() {
		firm, err := scanMonitoredFirm(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *firm)
	}
	return result, rows.Err()
}

func (r *monitoredFirmRepository) TouchDataUpdate(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE monitored_firms SET last_data_update=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMonitoredFirm(row pgx.Row) (*domain.MonitoredFirm, error) {
	var firm domain.MonitoredFirm
	if err := row.Scan(
		&firm.ID,
		&firm.FirmName,
		&firm.Country,
		&firm.RegistrationNumber,
		&firm.FirmType,
		&firm.Website,
		&firm.Headquarters,
		&firm.LastDataUpdate,
		&firm.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &firm, nil
}
