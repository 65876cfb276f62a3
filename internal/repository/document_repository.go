package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// DocumentWithUploader carries document metadata plus the uploading
// firm's display name for the deal locker listing.
type DocumentWithUploader struct {
	Document     domain.Document
	UploaderName string
}

// DocumentRepository encapsulates deal-locker metadata persistence.
type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByDeal(ctx context.Context, dealID string) ([]DocumentWithUploader, error)
	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository returns a Postgres-backed implementation.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

func (r *documentRepository) Create(ctx context.Context, document *domain.Document) error {
	const query = `
        INSERT INTO documents (deal_id, file_name, storage_key, file_url, file_size, file_type, uploaded_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		document.DealID,
		document.FileName,
		document.StorageKey,
		document.FileURL,
		document.FileSize,
		document.FileType,
		document.UploadedBy,
	).Scan(&document.ID, &document.CreatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	const query = `
        SELECT id, deal_id, file_name, storage_key, file_url, file_size, file_type, uploaded_by, created_at
        FROM documents WHERE id=$1`

	var doc domain.Document
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.DealID,
		&doc.FileName,
		&doc.StorageKey,
		&doc.FileURL,
		&doc.FileSize,
		&doc.FileType,
		&doc.UploadedBy,
		&doc.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByDeal(ctx context.Context, dealID string) ([]DocumentWithUploader, error) {
	const query = `
        SELECT d.id, d.deal_id, d.file_name, d.storage_key, d.file_url, d.file_size, d.file_type,
               d.uploaded_by, d.created_at, f.firm_name
        FROM documents d
        JOIN firms f ON f.id = d.uploaded_by
        WHERE d.deal_id=$1
        ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DocumentWithUploader
	for rows.Next() {
		var item DocumentWithUploader
		if err := rows.Scan(
			&item.Document.ID,
			&item.Document.DealID,
			&item.Document.FileName,
			&item.Document.StorageKey,
			&item.Document.FileURL,
			&item.Document.FileSize,
			&item.Document.FileType,
			&item.Document.UploadedBy,
			&item.Document.CreatedAt,
			&item.UploaderName,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
