package dto

import (
	"time"

	"github.com/spec-kit/scholarship-service/internal/domain"
)

// Envelope is the platform's uniform response shape.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest payload for POST /api/auth/register.
type RegisterRequest struct {
	FirstName           string `json:"firstName" validate:"required,max=100"`
	LastName            string `json:"lastName" validate:"required,max=100"`
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8"`
	Track               string `json:"track" validate:"omitempty,max=100"`
	ScholarshipInterest bool   `json:"scholarshipInterest"`
}

// ForgotPasswordRequest payload for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest payload for POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// MagicLinkRequest payload for POST /api/auth/magic-link.
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserResponse is the wire shape of a user.
type UserResponse struct {
	ID                  string        `json:"id"`
	Email               string        `json:"email"`
	FirstName           string        `json:"firstName"`
	LastName            string        `json:"lastName"`
	Roles               []domain.Role `json:"roles"`
	Track               *string       `json:"track,omitempty"`
	ScholarshipInterest bool          `json:"scholarshipInterest"`
	Active              bool          `json:"active"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// NewUserResponse maps a domain user to its wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Roles:               user.Roles,
		Track:               user.TrackSlug,
		ScholarshipInterest: user.ScholarshipInterest,
		Active:              user.Active,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}

// AuthPayload is the data object returned by login/register/verify.
type AuthPayload struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
