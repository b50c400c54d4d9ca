package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/scholarship-service/internal/auth"
	"github.com/spec-kit/scholarship-service/internal/config"
	"github.com/spec-kit/scholarship-service/internal/domain"
	"github.com/spec-kit/scholarship-service/internal/events"
	"github.com/spec-kit/scholarship-service/internal/repository"
	apperrors "github.com/spec-kit/scholarship-service/pkg/util"
)

// ErrInvalidCredentials is returned for any login failure cause so the
// response does not reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenRevoker denylists access tokens until their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	FirstName           string
	LastName            string
	Email               string
	Password            string
	TrackSlug           string
	ScholarshipInterest bool
}

// AuthService coordinates registration, login and token lifecycle flows.
type AuthService struct {
	users        repository.UserRepository
	tracks       repository.TrackRepository
	actionTokens repository.ActionTokenRepository
	dispatcher   events.Dispatcher
	revoker      TokenRevoker
	tokenMgr     *auth.TokenManager
	bcryptCost   int
	resetTTL     time.Duration
	magicTTL     time.Duration
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	TrackRepo       repository.TrackRepository
	ActionTokenRepo repository.ActionTokenRepository
	Dispatcher      events.Dispatcher
	Revoker         TokenRevoker
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		tracks:       deps.TrackRepo,
		actionTokens: deps.ActionTokenRepo,
		dispatcher:   deps.Dispatcher,
		revoker:      deps.Revoker,
		tokenMgr:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:   cfg.Auth.BcryptCost,
		resetTTL:     time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		magicTTL:     time.Duration(cfg.Auth.MagicLinkTTLMinutes) * time.Minute,
	}
}

// Register creates a new student account and issues an access token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	var trackSlug *string
	if input.TrackSlug != "" {
		track, err := s.tracks.GetBySlug(ctx, input.TrackSlug)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, "", time.Time{}, apperrors.NewValidationError("unknown track", map[string]any{"track": input.TrackSlug})
			}
			return nil, "", time.Time{}, err
		}
		trackSlug = &track.Slug
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Email:               email,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		PasswordHash:        hash,
		Roles:               []domain.Role{domain.RoleStudent},
		TrackSlug:           trackSlug,
		ScholarshipInterest: input.ScholarshipInterest,
		Active:              true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email:     user.Email,
		FirstName: user.FirstName,
		Roles:     user.Roles,
		TrackSlug: user.TrackSlug,
	})

	return user, token, exp, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !user.Active {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout denylists the presented token until it would expire anyway.
// Best effort: a missing revoker makes logout a no-op server-side.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if s.revoker == nil || tokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, tokenID, s.tokenMgr.TTL())
}

// ForgotPassword stores a reset token and emits the reset event. An
// unknown email is not an error; the handler responds identically in
// both cases so account existence is never revealed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}

	token := &repository.ActionToken{
		Kind:      domain.ActionTokenPasswordReset,
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.actionTokens.Create(ctx, token); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordResetRequested, user.ID, events.PasswordResetRequestedPayload{
		Email:      user.Email,
		FirstName:  user.FirstName,
		ResetToken: token.Token,
		ExpiresAt:  token.ExpiresAt,
	})
	return nil
}

// ResetPassword validates the reset token and updates the password.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.consumeToken(ctx, domain.ActionTokenPasswordReset, tokenStr)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, user.ID, events.PasswordChangedPayload{Email: user.Email})
	return nil
}

// RequestMagicLink stores a sign-in link token and emits the issue
// event. Like ForgotPassword, unknown emails succeed silently.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	if !user.Active {
		return nil
	}

	token := &repository.ActionToken{
		Kind:      domain.ActionTokenMagicLink,
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.magicTTL),
	}
	if err := s.actionTokens.Create(ctx, token); err != nil {
		return err
	}

	s.publish(ctx, events.EventMagicLinkIssued, user.ID, events.MagicLinkIssuedPayload{
		Email:     user.Email,
		FirstName: user.FirstName,
		LinkToken: token.Token,
		ExpiresAt: token.ExpiresAt,
	})
	return nil
}

// VerifyMagicLink consumes a sign-in link token and issues an access token.
func (s *AuthService) VerifyMagicLink(ctx context.Context, tokenStr string) (*domain.User, string, time.Time, error) {
	token, err := s.consumeToken(ctx, domain.ActionTokenMagicLink, tokenStr)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account deactivated")
	}

	accessToken, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, accessToken, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) consumeToken(ctx context.Context, kind domain.ActionTokenKind, tokenStr string) (*repository.ActionToken, error) {
	token, err := s.actionTokens.GetByToken(ctx, kind, tokenStr)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid or expired token")
		}
		return nil, err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}
	if err := s.actionTokens.MarkUsed(ctx, token.ID); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
