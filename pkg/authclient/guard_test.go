package authclient

import "testing"

func authedState(roles ...Role) State {
	return State{
		User:          &User{ID: "u1", Email: "u@x.com", Roles: roles},
		Authenticated: true,
	}
}

func TestGuardLoadingNeverRedirects(t *testing.T) {
	guards := []Guard{
		ProtectedGuard(),
		AdminGuard(),
		RolesGuard(RoleAdmin, RoleTutor),
	}
	for _, g := range guards {
		got := g.Check(State{Loading: true}, "/dashboard")
		if got.Decision != DecisionShowLoading {
			t.Fatalf("loading state: got %v, want loading", got.Decision)
		}
		if got.RedirectTo != "" {
			t.Fatalf("loading state produced redirect %q", got.RedirectTo)
		}
	}
}

func TestGuardUnauthenticatedRedirectsToLogin(t *testing.T) {
	got := AdminGuard().Check(State{}, "/admin/overview")
	if got.Decision != DecisionRedirectToLogin {
		t.Fatalf("got %v, want redirect-to-login", got.Decision)
	}
	if got.RedirectTo != DefaultLoginPath {
		t.Fatalf("RedirectTo = %q, want %q", got.RedirectTo, DefaultLoginPath)
	}
	if got.From != "/admin/overview" {
		t.Fatalf("From = %q, want attempted location preserved", got.From)
	}
}

func TestGuardCustomPaths(t *testing.T) {
	g := Guard{RequiredRoles: []Role{RoleAdmin}, LoginPath: "/signin", UnauthorizedPath: "/denied"}

	if got := g.Check(State{}, "/x"); got.RedirectTo != "/signin" {
		t.Fatalf("login RedirectTo = %q, want /signin", got.RedirectTo)
	}
	if got := g.Check(authedState(RoleStudent), "/x"); got.RedirectTo != "/denied" {
		t.Fatalf("unauthorized RedirectTo = %q, want /denied", got.RedirectTo)
	}
}

func TestGuardRoleMatrix(t *testing.T) {
	tests := []struct {
		name  string
		guard Guard
		state State
		want  Decision
	}{
		{"empty roles admits any authenticated user", ProtectedGuard(), authedState(RoleStudent), DecisionRender},
		{"empty roles admits moderator", ProtectedGuard(), authedState(RoleForumModerator), DecisionRender},
		{"admin guard rejects student", AdminGuard(), authedState(RoleStudent), DecisionRedirectToUnauthorized},
		{"admin guard admits admin-tutor", AdminGuard(), authedState(RoleAdmin, RoleTutor), DecisionRender},
		{"student guard admits student", StudentGuard(), authedState(RoleStudent), DecisionRender},
		{"tutor guard rejects moderator", TutorGuard(), authedState(RoleForumModerator), DecisionRedirectToUnauthorized},
		{"moderator guard admits moderator", ModeratorGuard(), authedState(RoleForumModerator), DecisionRender},
		{"multi-role guard admits on any intersection", RolesGuard(RoleAdmin, RoleTutor), authedState(RoleTutor), DecisionRender},
		{"multi-role guard rejects disjoint set", RolesGuard(RoleAdmin, RoleTutor), authedState(RoleStudent, RoleForumModerator), DecisionRedirectToUnauthorized},
		{"user with no roles rejected by role guard", AdminGuard(), authedState(), DecisionRedirectToUnauthorized},
		{"user with no roles admitted by empty guard", ProtectedGuard(), authedState(), DecisionRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.guard.Check(tt.state, "/route")
			if got.Decision != tt.want {
				t.Fatalf("Check() = %v, want %v", got.Decision, tt.want)
			}
		})
	}
}
