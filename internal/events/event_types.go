package events

import (
	"time"

	"github.com/spec-kit/scholarship-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventMagicLinkIssued        EventType = "magic_link_issued"
	EventPasswordChanged        EventType = "password_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	Roles     []domain.Role `json:"roles"`
	TrackSlug *string       `json:"track_slug,omitempty"`
}

// PasswordResetRequestedPayload payload.
type PasswordResetRequestedPayload struct {
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// MagicLinkIssuedPayload payload.
type MagicLinkIssuedPayload struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LinkToken string    `json:"link_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	Email string `json:"email"`
}
