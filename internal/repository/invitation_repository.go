package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
)

// InvitationListing is an invitation joined with deal and counterpart
// firm context for inbox/outbox views.
type InvitationListing struct {
	Invitation      domain.Invitation
	DealName        string
	DealSector      string
	CounterpartID   string
	CounterpartName string
}

// InvitationRepository encapsulates invitation persistence.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	GetByID(ctx context.Context, id string) (*domain.Invitation, error)
	HasPending(ctx context.Context, dealID, toFirmID string) (bool, error)
	ListReceived(ctx context.Context, firmID string) ([]InvitationListing, error)
	ListSent(ctx context.Context, firmID string) ([]InvitationListing, error)
	MarkResponded(ctx context.Context, q Querier, id string, status domain.InvitationStatus) (*domain.Invitation, error)
}

type invitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository returns a Postgres-backed implementation.
func NewInvitationRepository(pool *pgxpool.Pool) InvitationRepository {
	return &invitationRepository{pool: pool}
}

const invitationColumns = `id, deal_id, from_firm_id, to_firm_id, message, status, created_at, responded_at`

func (r *invitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	const query = `
        INSERT INTO invitations (deal_id, from_firm_id, to_firm_id, message, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		invitation.DealID,
		invitation.FromFirmID,
		invitation.ToFirmID,
		invitation.Message,
		invitation.Status,
	).Scan(&invitation.ID, &invitation.CreatedAt)
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	const query = `
        SELECT id, deal_id, from_firm_id, to_firm_id, message, status, created_at, responded_at
        FROM invitations WHERE id=$1`
	return scanInvitation(r.pool.QueryRow(ctx, query, id))
}

func (r *invitationRepository) HasPending(ctx context.Context, dealID, toFirmID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM invitations WHERE deal_id=$1 AND to_firm_id=$2 AND status='pending'
        )`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, dealID, toFirmID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *invitationRepository) ListReceived(ctx context.Context, firmID string) ([]InvitationListing, error) {
	const query = `
        SELECT i.id, i.deal_id, i.from_firm_id, i.to_firm_id, i.message, i.status, i.created_at, i.responded_at,
               d.deal_name, d.sector, f.id, f.firm_name
        FROM invitations i
        JOIN deals d ON d.id = i.deal_id
        JOIN firms f ON f.id = i.from_firm_id
        WHERE i.to_firm_id=$1
        ORDER BY i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, firmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvitationListings(rows)
}

func (r *invitationRepository) ListSent(ctx context.Context, firmID string) ([]InvitationListing, error) {
	const query = `
        SELECT i.id, i.deal_id, i.from_firm_id, i.to_firm_id, i.message, i.status, i.created_at, i.responded_at,
               d.deal_name, d.sector, f.id, f.firm_name
        FROM invitations i
        JOIN deals d ON d.id = i.deal_id
        JOIN firms f ON f.id = i.to_firm_id
        WHERE i.from_firm_id=$1
        ORDER BY i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, firmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvitationListings(rows)
}

// MarkResponded moves a pending invitation to a terminal status. The
// WHERE clause conditions on status='pending', so a second response to
// the same invitation matches no row and surfaces as pgx.ErrNoRows.
func (r *invitationRepository) MarkResponded(ctx context.Context, q Querier, id string, status domain.InvitationStatus) (*domain.Invitation, error) {
	const query = `
        UPDATE invitations SET status=$1, responded_at=NOW()
        WHERE id=$2 AND status='pending'
        RETURNING id, deal_id, from_firm_id, to_firm_id, message, status, created_at, responded_at`
	return scanInvitation(q.QueryRow(ctx, query, status, id))
}

func scanInvitation(row pgx.Row) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := row.Scan(
		&invitation.ID,
		&invitation.DealID,
		&invitation.FromFirmID,
		&invitation.ToFirmID,
		&invitation.Message,
		&invitation.Status,
		&invitation.CreatedAt,
		&invitation.RespondedAt,
	); err != nil {
		return nil, err
	}
	return &invitation, nil
}

func scanInvitationListings(rows pgx.Rows) ([]InvitationListing, error) {
	var result []InvitationListing
	for rows.Next() {
		var listing InvitationListing
		if err := rows.Scan(
			&listing.Invitation.ID,
			&listing.Invitation.DealID,
			&listing.Invitation.FromFirmID,
			&listing.Invitation.ToFirmID,
			&listing.Invitation.Message,
			&listing.Invitation.Status,
			&listing.Invitation.CreatedAt,
			&listing.Invitation.RespondedAt,
			&listing.DealName,
			&listing.DealSector,
			&listing.CounterpartID,
			&listing.CounterpartName,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
