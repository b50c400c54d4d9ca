package authclient

// Decision is the outcome of a route guard check.
type Decision int

const (
	// DecisionRender: show the protected content.
	DecisionRender Decision = iota
	// DecisionShowLoading: an auth check is in flight; render a loading
	// indicator and do not redirect yet.
	DecisionShowLoading
	// DecisionRedirectToLogin: not authenticated.
	DecisionRedirectToLogin
	// DecisionRedirectToUnauthorized: authenticated, insufficient role.
	DecisionRedirectToUnauthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionRender:
		return "render"
	case DecisionShowLoading:
		return "loading"
	case DecisionRedirectToLogin:
		return "redirect-to-login"
	default:
		return "redirect-to-unauthorized"
	}
}

// Default redirect targets.
const (
	DefaultLoginPath        = "/login"
	DefaultUnauthorizedPath = "/unauthorized"
)

// GuardResult carries the decision and, for redirects, where to go.
// From preserves the attempted location on a login redirect so the
// login flow can return the user there after success.
type GuardResult struct {
	Decision   Decision
	RedirectTo string
	From       string
}

// Guard decides whether the current auth state may reach a route. An
// empty RequiredRoles set admits any authenticated user.
type Guard struct {
	RequiredRoles    []Role
	LoginPath        string
	UnauthorizedPath string
}

// Check evaluates the guard against state for a route at location.
// The checks apply in order: loading, authentication, role.
func (g Guard) Check(state State, location string) GuardResult {
	if state.Loading {
		return GuardResult{Decision: DecisionShowLoading}
	}
	if !state.Authenticated || state.User == nil {
		return GuardResult{
			Decision:   DecisionRedirectToLogin,
			RedirectTo: g.loginPath(),
			From:       location,
		}
	}
	if !state.User.HasAnyRole(g.RequiredRoles...) {
		return GuardResult{
			Decision:   DecisionRedirectToUnauthorized,
			RedirectTo: g.unauthorizedPath(),
		}
	}
	return GuardResult{Decision: DecisionRender}
}

func (g Guard) loginPath() string {
	if g.LoginPath != "" {
		return g.LoginPath
	}
	return DefaultLoginPath
}

func (g Guard) unauthorizedPath() string {
	if g.UnauthorizedPath != "" {
		return g.UnauthorizedPath
	}
	return DefaultUnauthorizedPath
}

// ProtectedGuard admits any authenticated user regardless of role.
func ProtectedGuard() Guard {
	return Guard{}
}

// StudentGuard admits students only.
func StudentGuard() Guard {
	return RolesGuard(RoleStudent)
}

// AdminGuard admits admins only.
func AdminGuard() Guard {
	return RolesGuard(RoleAdmin)
}

// TutorGuard admits tutors only.
func TutorGuard() Guard {
	return RolesGuard(RoleTutor)
}

// ModeratorGuard admits forum moderators only.
func ModeratorGuard() Guard {
	return RolesGuard(RoleForumModerator)
}

// RolesGuard admits users holding at least one of the given roles.
func RolesGuard(roles ...Role) Guard {
	return Guard{RequiredRoles: roles}
}
