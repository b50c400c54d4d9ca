package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scholarship-service/internal/api/http/handlers"
	"github.com/spec-kit/scholarship-service/internal/auth"
	"github.com/spec-kit/scholarship-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Portal         *handlers.PortalHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/magic-link", cfg.Auth.RequestMagicLink)
	authGroup.Get("/verify-magic-link", cfg.Auth.VerifyMagicLink)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	portal := api.Group("/portal", cfg.AuthMiddleware.Handle)
	portal.Get("/tracks", auth.RequireAuthenticated(), cfg.Portal.Tracks)
	portal.Get("/student", auth.RequireStudent(), cfg.Portal.StudentDashboard)
	portal.Get("/admin", auth.RequireAdmin(), cfg.Portal.AdminOverview)
	portal.Get("/tutor", auth.RequireTutor(), cfg.Portal.TutorRoster)
	portal.Get("/moderation", auth.RequireModerator(), cfg.Portal.ModeratorQueue)
	portal.Get("/staff", auth.RequireRoles(domain.RoleAdmin, domain.RoleTutor, domain.RoleForumModerator), cfg.Portal.AdminOverview)
}
