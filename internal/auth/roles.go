package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scholarship-service/internal/domain"
)

// RequireRoles ensures the authenticated user's role set intersects the
// allowed set. An empty allowed set admits any authenticated user.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		for _, role := range principal.User.Roles {
			if _, exists := allowedSet[role]; exists {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "insufficient role")
	}
}

// RequireStudent admits students only.
func RequireStudent() fiber.Handler {
	return RequireRoles(domain.RoleStudent)
}

// RequireAdmin admits admins only.
func RequireAdmin() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// RequireTutor admits tutors only.
func RequireTutor() fiber.Handler {
	return RequireRoles(domain.RoleTutor)
}

// RequireModerator admits forum moderators only.
func RequireModerator() fiber.Handler {
	return RequireRoles(domain.RoleForumModerator)
}

// RequireAuthenticated admits any authenticated user regardless of role.
func RequireAuthenticated() fiber.Handler {
	return RequireRoles()
}
