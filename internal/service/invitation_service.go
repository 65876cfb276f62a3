package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/events"
	"github.com/syndicate-plus/syndicate-service/internal/persistence"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// InvitationService governs the invitation lifecycle: pending →
// accepted | declined, and the syndicate/NDA side effects of an
// accepted invitation.
type InvitationService struct {
	invitations repository.InvitationRepository
	deals       repository.DealRepository
	firms       repository.FirmRepository
	ndas        repository.NDARepository
	tx          persistence.TxRunner
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// InvitationDependencies bundles requirements for the invitation service.
type InvitationDependencies struct {
	InvitationRepo repository.InvitationRepository
	DealRepo       repository.DealRepository
	FirmRepo       repository.FirmRepository
	NDARepo        repository.NDARepository
	TxRunner       persistence.TxRunner
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewInvitationService constructs the service.
func NewInvitationService(deps InvitationDependencies) *InvitationService {
	return &InvitationService{
		invitations: deps.InvitationRepo,
		deals:       deps.DealRepo,
		firms:       deps.FirmRepo,
		ndas:        deps.NDARepo,
		tx:          deps.TxRunner,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// SendResult pairs the created invitation with the target firm's name
// for the confirmation message.
type SendResult struct {
	Invitation *domain.Invitation
	ToFirmName string
}

// Send creates a pending invitation from the deal owner to a candidate
// firm. The sender must own the deal; an absent or foreign deal is
// reported as not found. A second pending invitation for the same
// (deal, firm) pair is rejected.
func (s *InvitationService) Send(ctx context.Context, fromFirmID, dealID, toFirmID, message string) (*SendResult, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
		}
		return nil, err
	}
	if deal.OwnerFirmID != fromFirmID {
		return nil, apperrors.NewNotFound("deal", map[string]any{"deal_id": dealID})
	}
	if toFirmID == fromFirmID {
		return nil, apperrors.NewValidationError("cannot invite your own firm", nil)
	}

	target, err := s.firms.GetByID(ctx, toFirmID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("target firm", map[string]any{"firm_id": toFirmID})
		}
		return nil, err
	}

	pending, err := s.invitations.HasPending(ctx, dealID, toFirmID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflict("a pending invitation already exists for this firm", map[string]any{
			"deal_id": dealID,
			"firm_id": toFirmID,
		})
	}

	invitation := &domain.Invitation{
		DealID:     dealID,
		FromFirmID: fromFirmID,
		ToFirmID:   toFirmID,
		Message:    message,
		Status:     domain.InvitationStatusPending,
	}
	if err := s.invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventInvitationSent,
		FirmID: fromFirmID,
		Payload: events.InvitationSentPayload{
			InvitationID: invitation.ID,
			DealID:       dealID,
			ToFirmID:     toFirmID,
			ToFirmName:   target.FirmName,
		},
	})
	return &SendResult{Invitation: invitation, ToFirmName: target.FirmName}, nil
}

// Respond moves an invitation to a terminal state. Only the invited
// firm may respond, and only once: the underlying update is conditional
// on the pending status, so a raced or repeated response surfaces as a
// conflict. When the invitation is accepted with a signed NDA, the
// status change, the syndicate membership and the NDA record commit in
// a single transaction; acceptance without a signed NDA changes the
// status only.
func (s *InvitationService) Respond(ctx context.Context, responderFirmID, invitationID string, response domain.InvitationStatus, ndaSigned bool) (*domain.Invitation, error) {
	if response != domain.InvitationStatusAccepted && response != domain.InvitationStatusDeclined {
		return nil, apperrors.NewValidationError("response must be accepted or declined", nil)
	}

	invitation, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("invitation", map[string]any{"invitation_id": invitationID})
		}
		return nil, err
	}
	if invitation.ToFirmID != responderFirmID {
		return nil, apperrors.NewNotFound("invitation", map[string]any{"invitation_id": invitationID})
	}
	if invitation.Status.IsTerminal() {
		return nil, apperrors.NewConflict("invitation has already been responded to", map[string]any{
			"invitation_id": invitationID,
			"status":        invitation.Status,
		})
	}

	joinSyndicate := response == domain.InvitationStatusAccepted && ndaSigned

	var updated *domain.Invitation
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		var txErr error
		updated, txErr = s.invitations.MarkResponded(ctx, tx, invitationID, response)
		if txErr != nil {
			if errors.Is(txErr, pgx.ErrNoRows) {
				return apperrors.NewConflict("invitation has already been responded to", map[string]any{
					"invitation_id": invitationID,
				})
			}
			return txErr
		}
		if !joinSyndicate {
			return nil
		}
		if txErr := s.deals.AddSyndicateMember(ctx, tx, invitation.DealID, responderFirmID); txErr != nil {
			return txErr
		}
		return s.ndas.Create(ctx, tx, invitation.DealID, responderFirmID)
	})
	if err != nil {
		return nil, err
	}

	s.publishResponse(ctx, updated, responderFirmID, ndaSigned)
	return updated, nil
}

// ListReceived returns the firm's invitation inbox joined with deal and
// sender context.
func (s *InvitationService) ListReceived(ctx context.Context, firmID string) ([]repository.InvitationListing, error) {
	return s.invitations.ListReceived(ctx, firmID)
}

// ListSent returns invitations the firm has issued, joined with deal
// and recipient context.
func (s *InvitationService) ListSent(ctx context.Context, firmID string) ([]repository.InvitationListing, error) {
	return s.invitations.ListSent(ctx, firmID)
}

func (s *InvitationService) publishResponse(ctx context.Context, invitation *domain.Invitation, responderFirmID string, ndaSigned bool) {
	eventType := events.EventInvitationDeclined
	if invitation.Status == domain.InvitationStatusAccepted {
		eventType = events.EventInvitationAccepted
	}
	s.publish(ctx, events.Event{
		Type:   eventType,
		FirmID: responderFirmID,
		Payload: events.InvitationRespondedPayload{
			InvitationID: invitation.ID,
			DealID:       invitation.DealID,
			Status:       invitation.Status,
			NDASigned:    ndaSigned,
		},
	})
	if invitation.Status == domain.InvitationStatusAccepted && ndaSigned {
		s.publish(ctx, events.Event{
			Type:   events.EventNDASigned,
			FirmID: responderFirmID,
			Payload: events.NDASignedPayload{
				DealID: invitation.DealID,
				FirmID: responderFirmID,
			},
		})
	}
}

func (s *InvitationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
