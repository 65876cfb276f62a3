package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/events"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
)

// In-memory repository fakes. Mutations happen immediately; the fake tx
// runner just invokes the callback, so transactional tests assert on
// the returned error rather than rollback effects.

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published(eventType events.EventType) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

type fakeFirmRepo struct {
	firms map[string]*domain.Firm
}

func newFakeFirmRepo(firms ...*domain.Firm) *fakeFirmRepo {
	repo := &fakeFirmRepo{firms: map[string]*domain.Firm{}}
	for _, firm := range firms {
		if firm.ID == "" {
			firm.ID = uuid.NewString()
		}
		repo.firms[firm.ID] = firm
	}
	return repo
}

func (r *fakeFirmRepo) Create(ctx context.Context, firm *domain.Firm) error {
	firm.ID = uuid.NewString()
	firm.CreatedAt = time.Now()
	firm.UpdatedAt = firm.CreatedAt
	r.firms[firm.ID] = firm
	return nil
}

func (r *fakeFirmRepo) Update(ctx context.Context, firm *domain.Firm) error {
	if _, ok := r.firms[firm.ID]; !ok {
		return pgx.ErrNoRows
	}
	firm.UpdatedAt = time.Now()
	r.firms[firm.ID] = firm
	return nil
}

func (r *fakeFirmRepo) UpdatePassword(ctx context.Context, q repository.Querier, firmID, passwordHash string) error {
	firm, ok := r.firms[firmID]
	if !ok {
		return pgx.ErrNoRows
	}
	firm.PasswordHash = passwordHash
	return nil
}

func (r *fakeFirmRepo) GetByID(ctx context.Context, id string) (*domain.Firm, error) {
	firm, ok := r.firms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return firm, nil
}

func (r *fakeFirmRepo) GetByEmail(ctx context.Context, email string) (*domain.Firm, error) {
	for _, firm := range r.firms {
		if strings.EqualFold(firm.Email, email) {
			return firm, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeFirmRepo) ListAll(ctx context.Context) ([]domain.Firm, error) {
	result := make([]domain.Firm, 0, len(r.firms))
	for _, firm := range r.firms {
		result = append(result, *firm)
	}
	return result, nil
}

func (r *fakeFirmRepo) ListExcluding(ctx context.Context, firmID string) ([]domain.Firm, error) {
	var result []domain.Firm
	for _, firm := range r.firms {
		if firm.ID == firmID || firm.Status != domain.FirmStatusActive {
			continue
		}
		result = append(result, *firm)
	}
	return result, nil
}

func (r *fakeFirmRepo) ListWithFilter(ctx context.Context, filter repository.FirmFilter) ([]domain.Firm, int, error) {
	all, _ := r.ListAll(ctx)
	return all, len(all), nil
}

func (r *fakeFirmRepo) CountActivity(ctx context.Context, firmID string) (*repository.FirmActivityCounts, error) {
	return &repository.FirmActivityCounts{}, nil
}

func (r *fakeFirmRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.firms[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.firms, id)
	return nil
}

type fakeDealRepo struct {
	deals         map[string]*domain.Deal
	addMemberErr  error
	memberAdds    int
	invitedSetErr error
}

func newFakeDealRepo(deals ...*domain.Deal) *fakeDealRepo {
	repo := &fakeDealRepo{deals: map[string]*domain.Deal{}}
	for _, deal := range deals {
		if deal.ID == "" {
			deal.ID = uuid.NewString()
		}
		repo.deals[deal.ID] = deal
	}
	return repo
}

func (r *fakeDealRepo) Create(ctx context.Context, deal *domain.Deal) error {
	deal.ID = uuid.NewString()
	deal.CreatedAt = time.Now()
	deal.UpdatedAt = deal.CreatedAt
	r.deals[deal.ID] = deal
	return nil
}

func (r *fakeDealRepo) Update(ctx context.Context, deal *domain.Deal) error {
	if _, ok := r.deals[deal.ID]; !ok {
		return pgx.ErrNoRows
	}
	deal.UpdatedAt = time.Now()
	r.deals[deal.ID] = deal
	return nil
}

func (r *fakeDealRepo) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	deal, ok := r.deals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return deal, nil
}

func (r *fakeDealRepo) ListByOwner(ctx context.Context, ownerFirmID string) ([]domain.Deal, error) {
	var result []domain.Deal
	for _, deal := range r.deals {
		if deal.OwnerFirmID == ownerFirmID {
			result = append(result, *deal)
		}
	}
	return result, nil
}

func (r *fakeDealRepo) ListInvited(ctx context.Context, firmID string) ([]domain.Deal, error) {
	var result []domain.Deal
	for _, deal := range r.deals {
		for _, id := range deal.InvitedFirms {
			if id == firmID {
				result = append(result, *deal)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeDealRepo) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Deal, error) {
	var result []domain.Deal
	for _, deal := range r.deals {
		if !deal.CreatedAt.Before(since) {
			result = append(result, *deal)
		}
	}
	return result, nil
}

func (r *fakeDealRepo) SetInvitedFirms(ctx context.Context, dealID string, invitedFirms []string, status domain.DealStatus) (*domain.Deal, error) {
	deal, ok := r.deals[dealID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if r.invitedSetErr != nil {
		return nil, r.invitedSetErr
	}
	deal.InvitedFirms = invitedFirms
	deal.Status = status
	deal.UpdatedAt = time.Now()
	return deal, nil
}

func (r *fakeDealRepo) AddSyndicateMember(ctx context.Context, q repository.Querier, dealID, firmID string) error {
	if r.addMemberErr != nil {
		return r.addMemberErr
	}
	deal, ok := r.deals[dealID]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, id := range deal.SyndicateMembers {
		if id == firmID {
			return nil
		}
	}
	deal.SyndicateMembers = append(deal.SyndicateMembers, firmID)
	r.memberAdds++
	return nil
}

type fakeInvitationRepo struct {
	invitations map[string]*domain.Invitation
	// forceRaced makes MarkResponded behave as if another request won
	// the conditional update first.
	forceRaced bool
}

func newFakeInvitationRepo(invitations ...*domain.Invitation) *fakeInvitationRepo {
	repo := &fakeInvitationRepo{invitations: map[string]*domain.Invitation{}}
	for _, invitation := range invitations {
		if invitation.ID == "" {
			invitation.ID = uuid.NewString()
		}
		repo.invitations[invitation.ID] = invitation
	}
	return repo
}

func (r *fakeInvitationRepo) Create(ctx context.Context, invitation *domain.Invitation) error {
	invitation.ID = uuid.NewString()
	invitation.CreatedAt = time.Now()
	r.invitations[invitation.ID] = invitation
	return nil
}

func (r *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	invitation, ok := r.invitations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return invitation, nil
}

func (r *fakeInvitationRepo) HasPending(ctx context.Context, dealID, toFirmID string) (bool, error) {
	for _, invitation := range r.invitations {
		if invitation.DealID == dealID && invitation.ToFirmID == toFirmID && invitation.Status == domain.InvitationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInvitationRepo) ListReceived(ctx context.Context, firmID string) ([]repository.InvitationListing, error) {
	var result []repository.InvitationListing
	for _, invitation := range r.invitations {
		if invitation.ToFirmID == firmID {
			result = append(result, repository.InvitationListing{Invitation: *invitation})
		}
	}
	return result, nil
}

func (r *fakeInvitationRepo) ListSent(ctx context.Context, firmID string) ([]repository.InvitationListing, error) {
	var result []repository.InvitationListing
	for _, invitation := range r.invitations {
		if invitation.FromFirmID == firmID {
			result = append(result, repository.InvitationListing{Invitation: *invitation})
		}
	}
	return result, nil
}

func (r *fakeInvitationRepo) MarkResponded(ctx context.Context, q repository.Querier, id string, status domain.InvitationStatus) (*domain.Invitation, error) {
	invitation, ok := r.invitations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if r.forceRaced || invitation.Status != domain.InvitationStatusPending {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	invitation.Status = status
	invitation.RespondedAt = &now
	return invitation, nil
}

type fakeNDARepo struct {
	ndas      map[string]domain.NDA
	createErr error
}

func newFakeNDARepo() *fakeNDARepo {
	return &fakeNDARepo{ndas: map[string]domain.NDA{}}
}

func ndaKey(dealID, firmID string) string {
	return fmt.Sprintf("%s/%s", dealID, firmID)
}

func (r *fakeNDARepo) Create(ctx context.Context, q repository.Querier, dealID, firmID string) error {
	if r.createErr != nil {
		return r.createErr
	}
	key := ndaKey(dealID, firmID)
	if _, ok := r.ndas[key]; ok {
		return nil
	}
	r.ndas[key] = domain.NDA{ID: uuid.NewString(), DealID: dealID, FirmID: firmID, SignedAt: time.Now()}
	return nil
}

func (r *fakeNDARepo) GetByDealAndFirm(ctx context.Context, dealID, firmID string) (*domain.NDA, error) {
	nda, ok := r.ndas[ndaKey(dealID, firmID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &nda, nil
}

func (r *fakeNDARepo) ListByDeal(ctx context.Context, dealID string) ([]domain.NDA, error) {
	var result []domain.NDA
	for _, nda := range r.ndas {
		if nda.DealID == dealID {
			result = append(result, nda)
		}
	}
	return result, nil
}

func (r *fakeNDARepo) CountByFirm(ctx context.Context, firmID string) (int, error) {
	count := 0
	for _, nda := range r.ndas {
		if nda.FirmID == firmID {
			count++
		}
	}
	return count, nil
}

type fakeResetRepo struct {
	tokens map[string]*domain.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*domain.PasswordResetToken{}}
}

func (r *fakeResetRepo) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeResetRepo) GetValidByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && !token.Used && token.ExpiresAt.After(time.Now()) {
			return token, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) MarkUsed(ctx context.Context, q repository.Querier, id string) error {
	token, ok := r.tokens[id]
	if !ok {
		return pgx.ErrNoRows
	}
	token.Used = true
	return nil
}

func (r *fakeResetRepo) DeleteUnusedForFirm(ctx context.Context, firmID string) error {
	for id, token := range r.tokens {
		if token.FirmID == firmID && !token.Used {
			delete(r.tokens, id)
		}
	}
	return nil
}
