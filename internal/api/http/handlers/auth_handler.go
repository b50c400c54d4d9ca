package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scholarship-service/internal/api/dto"
	"github.com/spec-kit/scholarship-service/internal/auth"
	"github.com/spec-kit/scholarship-service/internal/service"
	apperrors "github.com/spec-kit/scholarship-service/pkg/util"
	"github.com/spec-kit/scholarship-service/pkg/validation"
)

// AuthHandler exposes the /api/auth endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validation.Struct(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(dto.Envelope{Success: true, Data: dto.AuthPayload{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: exp,
	}})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validation.Struct(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	user, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Password:            req.Password,
		TrackSlug:           req.Track,
		ScholarshipInterest: req.ScholarshipInterest,
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.Envelope{Success: true, Data: dto.AuthPayload{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: exp,
	}})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response
// is identical whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validation.Struct(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	if err := h.auth.ForgotPassword(c.Context(), req.Email); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "if the account exists, a reset link has been sent"})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validation.Struct(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	if err := h.auth.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "password updated"})
}

// RequestMagicLink handles POST /api/auth/magic-link. Non-revealing,
// like ForgotPassword.
func (h *AuthHandler) RequestMagicLink(c *fiber.Ctx) error {
	var req dto.MagicLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validation.Struct(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	if err := h.auth.RequestMagicLink(c.Context(), req.Email); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "if the account exists, a sign-in link has been sent"})
}

// VerifyMagicLink handles GET /api/auth/verify-magic-link?token=.
func (h *AuthHandler) VerifyMagicLink(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		return apperrors.NewValidationError("token query parameter required", nil)
	}

	user, token, exp, err := h.auth.VerifyMagicLink(c.Context(), tokenStr)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(dto.Envelope{Success: true, Data: dto.AuthPayload{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: exp,
	}})
}

// Me handles GET /api/auth/me. The bearer middleware has already
// loaded and re-validated the principal.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return c.JSON(dto.Envelope{Success: true, Data: fiber.Map{
		"user": dto.NewUserResponse(principal.User),
	}})
}

// Logout handles POST /api/auth/logout. Revocation is best effort; the
// response succeeds even without a valid bearer token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if tokenStr, ok := auth.BearerToken(c); ok {
		if claims, err := h.auth.TokenManager().ParseToken(tokenStr); err == nil {
			if err := h.auth.Logout(c.Context(), claims.ID); err != nil {
				return apperrors.MapError(err)
			}
		}
	}
	return c.JSON(dto.Envelope{Success: true, Message: "logged out"})
}
