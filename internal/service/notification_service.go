package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/config"
	"github.com/syndicate-plus/syndicate-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Delivery is stubbed: outbound email and webhooks are logged, not sent.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventFirmRegistered, n.handleFirmRegistered)
	n.dispatcher.Subscribe(events.EventInvitationSent, n.handleInvitationSent)
	n.dispatcher.Subscribe(events.EventInvitationAccepted, n.handleInvitationResponded)
	n.dispatcher.Subscribe(events.EventInvitationDeclined, n.handleInvitationResponded)
	n.dispatcher.Subscribe(events.EventNDASigned, n.handleNDASigned)
	n.dispatcher.Subscribe(events.EventPasswordResetIssued, n.handlePasswordResetIssued)
}

func (n *NotificationService) handleFirmRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("FirmRegistered", zap.String("firm_id", event.FirmID), zap.Any("payload", event.Payload))
	n.sendEmailStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInvitationSent(ctx context.Context, event events.Event) error {
	n.logger.Info("InvitationSent", zap.String("firm_id", event.FirmID), zap.Any("payload", event.Payload))
	n.sendEmailStub(ctx, event)
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInvitationResponded(ctx context.Context, event events.Event) error {
	n.logger.Info("InvitationResponded", zap.String("firm_id", event.FirmID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleNDASigned(ctx context.Context, event events.Event) error {
	n.logger.Info("NDASigned", zap.String("firm_id", event.FirmID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePasswordResetIssued(ctx context.Context, event events.Event) error {
	// The reset URL carries a live credential; never log the payload.
	n.logger.Info("PasswordResetIssued", zap.String("firm_id", event.FirmID))
	n.sendEmailStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("firm_id", event.FirmID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("firm_id", event.FirmID),
		zap.String("event_type", string(event.Type)))
}
