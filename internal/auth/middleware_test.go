package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/scholarship-service/internal/domain"
	apperrors "github.com/spec-kit/scholarship-service/pkg/util"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeDenylist struct {
	revoked map[string]bool
}

func (f *fakeDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], nil
}

func testApp(t *testing.T, mw *Middleware) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"success": false, "error": fiberErr.Message})
			}
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"success": false, "error": de.Message})
		},
	})

	ok := func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) }
	app.Get("/any", mw.Handle, RequireAuthenticated(), ok)
	app.Get("/student", mw.Handle, RequireStudent(), ok)
	app.Get("/admin", mw.Handle, RequireAdmin(), ok)
	app.Get("/tutor", mw.Handle, RequireTutor(), ok)
	app.Get("/moderation", mw.Handle, RequireModerator(), ok)
	app.Get("/staff", mw.Handle, RequireRoles(domain.RoleAdmin, domain.RoleTutor, domain.RoleForumModerator), ok)
	return app
}

func TestMiddlewareAndRoleGuards(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	student := &domain.User{ID: "s1", Email: "s@x.com", Roles: []domain.Role{domain.RoleStudent}, Active: true}
	adminTutor := &domain.User{ID: "a1", Email: "a@x.com", Roles: []domain.Role{domain.RoleAdmin, domain.RoleTutor}, Active: true}
	moderator := &domain.User{ID: "m1", Email: "m@x.com", Roles: []domain.Role{domain.RoleForumModerator}, Active: true}
	inactive := &domain.User{ID: "i1", Email: "i@x.com", Roles: []domain.Role{domain.RoleStudent}, Active: false}

	repo := &fakeUserRepo{users: map[string]*domain.User{
		"s1": student, "a1": adminTutor, "m1": moderator, "i1": inactive,
	}}
	denylist := &fakeDenylist{revoked: map[string]bool{}}
	app := testApp(t, NewMiddleware(tm, repo, denylist))

	tokenFor := func(u *domain.User) string {
		token, _, err := tm.GenerateToken(u)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		return token
	}

	studentToken := tokenFor(student)
	adminTutorToken := tokenFor(adminTutor)
	moderatorToken := tokenFor(moderator)
	inactiveToken := tokenFor(inactive)

	revokedToken := tokenFor(student)
	revokedClaims, _ := tm.ParseToken(revokedToken)
	denylist.revoked[revokedClaims.ID] = true

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/any", "", http.StatusUnauthorized},
		{"malformed header", "/any", "Token abc", http.StatusUnauthorized},
		{"garbage token", "/any", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"revoked token", "/any", "Bearer " + revokedToken, http.StatusUnauthorized},
		{"inactive user", "/any", "Bearer " + inactiveToken, http.StatusUnauthorized},
		{"any role admits student", "/any", "Bearer " + studentToken, http.StatusOK},
		{"any role admits moderator", "/any", "Bearer " + moderatorToken, http.StatusOK},
		{"student route admits student", "/student", "Bearer " + studentToken, http.StatusOK},
		{"student route rejects admin", "/student", "Bearer " + adminTutorToken, http.StatusForbidden},
		{"admin route rejects student", "/admin", "Bearer " + studentToken, http.StatusForbidden},
		{"admin route admits admin-tutor", "/admin", "Bearer " + adminTutorToken, http.StatusOK},
		{"tutor route admits admin-tutor", "/tutor", "Bearer " + adminTutorToken, http.StatusOK},
		{"moderation route admits moderator", "/moderation", "Bearer " + moderatorToken, http.StatusOK},
		{"moderation route rejects student", "/moderation", "Bearer " + studentToken, http.StatusForbidden},
		{"multi-role route admits moderator", "/staff", "Bearer " + moderatorToken, http.StatusOK},
		{"multi-role route rejects student", "/staff", "Bearer " + studentToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	app := fiber.New()
	var token string
	var ok bool
	app.Get("/", func(c *fiber.Ctx) error {
		token, ok = BearerToken(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer my-token")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if !ok || token != "my-token" {
		t.Fatalf("BearerToken = %q, %v; want my-token, true (case-insensitive scheme)", token, ok)
	}
}
