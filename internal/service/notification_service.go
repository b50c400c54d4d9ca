package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/scholarship-service/internal/config"
	"github.com/spec-kit/scholarship-service/internal/events"
	"github.com/spec-kit/scholarship-service/pkg/mailer"
)

// NotificationService emits transactional email for auth events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	mail       *mailer.Mailgun
	baseURL    string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, mail *mailer.Mailgun, appCfg config.AppConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		mail:       mail,
		baseURL:    appCfg.PublicBaseURL,
	}
}

// RegisterHandlers subscribes to auth events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventMagicLinkIssued, n.handleMagicLinkIssued)
	n.dispatcher.Subscribe(events.EventPasswordChanged, n.handlePasswordChanged)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("user registered", zap.String("user_id", event.UserID), zap.String("email", payload.Email))

	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to the scholarship platform. Your account is ready.\n",
		payload.FirstName)
	return n.deliver(ctx, payload.Email, "Welcome to the scholarship platform", body)
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("password reset requested", zap.String("user_id", event.UserID))

	body := fmt.Sprintf(
		"Hi %s,\n\nReset your password here: %s/reset-password?token=%s\nThe link expires at %s.\n",
		payload.FirstName, n.baseURL, payload.ResetToken, payload.ExpiresAt.Format("15:04 MST"))
	return n.deliver(ctx, payload.Email, "Reset your password", body)
}

func (n *NotificationService) handleMagicLinkIssued(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MagicLinkIssuedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("magic link issued", zap.String("user_id", event.UserID))

	body := fmt.Sprintf(
		"Hi %s,\n\nSign in here: %s/api/auth/verify-magic-link?token=%s\nThe link expires at %s.\n",
		payload.FirstName, n.baseURL, payload.LinkToken, payload.ExpiresAt.Format("15:04 MST"))
	return n.deliver(ctx, payload.Email, "Your sign-in link", body)
}

func (n *NotificationService) handlePasswordChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("password changed", zap.String("user_id", event.UserID))
	return n.deliver(ctx, payload.Email, "Your password was changed",
		"Your password was just changed. If this wasn't you, contact support immediately.\n")
}

func (n *NotificationService) deliver(ctx context.Context, to, subject, body string) error {
	if !n.mail.Configured() {
		n.logger.Debug("mail not configured; skipping delivery",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	if err := n.mail.Send(ctx, to, subject, body); err != nil {
		n.logger.Error("mail delivery failed", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}
