package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// EnrichmentJobRepository manages the background job queue.
type EnrichmentJobRepository interface {
	Enqueue(ctx context.Context, job *domain.EnrichmentJob) error
	// ClaimQueued atomically moves up to limit queued jobs into the
	// processing state and returns them, oldest first. Two workers
	// polling concurrently never claim the same job.
	ClaimQueued(ctx context.Context, limit int) ([]domain.EnrichmentJob, error)
	MarkCompleted(ctx context.Context, id string, result []byte) error
	MarkFailed(ctx context.Context, id string, errorMessage string) error
}

type enrichmentJobRepository struct {
	pool *pgxpool.Pool
}

// NewEnrichmentJobRepository returns a Postgres-backed implementation.
func NewEnrichmentJobRepository(pool *pgxpool.Pool) EnrichmentJobRepository {
	return &enrichmentJobRepository{pool: pool}
}

func (r *enrichmentJobRepository) Enqueue(ctx context.Context, job *domain.EnrichmentJob) error {
	const query = `
        INSERT INTO enrichment_jobs (job_type, status, payload)
        VALUES ($1, 'queued', $2)
        RETURNING id, status, created_at`

	payload := job.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	return r.pool.QueryRow(ctx, query, job.JobType, payload).
		Scan(&job.ID, &job.Status, &job.CreatedAt)
}

func (r *enrichmentJobRepository) ClaimQueued(ctx context.Context, limit int) ([]domain.EnrichmentJob, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        UPDATE enrichment_jobs SET status='processing'
        WHERE id IN (
            SELECT id FROM enrichment_jobs
            WHERE status='queued'
            ORDER BY created_at
            LIMIT $1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING id, job_type, status, payload, result, error_message, created_at, completed_at`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrichmentJobs(rows)
}

func (r *enrichmentJobRepository) MarkCompleted(ctx context.Context, id string, result []byte) error {
	const query = `
        UPDATE enrichment_jobs SET status='completed', result=$1, completed_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, result, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *enrichmentJobRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	const query = `
        UPDATE enrichment_jobs SET status='failed', error_message=$1
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, errorMessage, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEnrichmentJobs(rows pgx.Rows) ([]domain.EnrichmentJob, error) {
	var result []domain.EnrichmentJob
	for rows.Next() {
		var job domain.EnrichmentJob
		if err := rows.Scan(
			&job.ID,
			&job.JobType,
			&job.Status,
			&job.Payload,
			&job.Result,
			&job.ErrorMessage,
			&job.CreatedAt,
			&job.CompletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
