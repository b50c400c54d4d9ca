package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scholarship-service/internal/api/dto"
	"github.com/spec-kit/scholarship-service/internal/auth"
	"github.com/spec-kit/scholarship-service/internal/repository"
	apperrors "github.com/spec-kit/scholarship-service/pkg/util"
)

// PortalHandler serves the role-scoped portal entry points. Each route
// sits behind a role guard; the handlers themselves only report what
// the caller is allowed to see.
type PortalHandler struct {
	tracks repository.TrackRepository
}

// NewPortalHandler constructs the handler.
func NewPortalHandler(tracks repository.TrackRepository) *PortalHandler {
	return &PortalHandler{tracks: tracks}
}

// Tracks handles GET /api/portal/tracks, available to any
// authenticated user.
func (h *PortalHandler) Tracks(c *fiber.Ctx) error {
	tracks, err := h.tracks.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.Envelope{Success: true, Data: fiber.Map{"tracks": tracks}})
}

// StudentDashboard handles GET /api/portal/student.
func (h *PortalHandler) StudentDashboard(c *fiber.Ctx) error {
	return h.area(c, "student")
}

// AdminOverview handles GET /api/portal/admin.
func (h *PortalHandler) AdminOverview(c *fiber.Ctx) error {
	return h.area(c, "admin")
}

// TutorRoster handles GET /api/portal/tutor.
func (h *PortalHandler) TutorRoster(c *fiber.Ctx) error {
	return h.area(c, "tutor")
}

// ModeratorQueue handles GET /api/portal/moderation.
func (h *PortalHandler) ModeratorQueue(c *fiber.Ctx) error {
	return h.area(c, "moderation")
}

func (h *PortalHandler) area(c *fiber.Ctx, name string) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return c.JSON(dto.Envelope{Success: true, Data: fiber.Map{
		"area":  name,
		"user":  dto.NewUserResponse(principal.User),
		"roles": principal.User.Roles,
	}})
}
