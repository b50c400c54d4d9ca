// Package authclient is the client SDK for the scholarship platform's
// auth API: a token store, an API client returning a uniform
// success/error envelope, a reducer-driven session state machine, and
// role-gated route guard decisions.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:3000/api"

// genericErrorMessage stands in for transport and parse failures with
// no usable message.
const genericErrorMessage = "an unknown error occurred"

// Role enumerates the platform's account roles as the API reports them.
type Role string

const (
	RoleStudent        Role = "student"
	RoleAdmin          Role = "admin"
	RoleForumModerator Role = "forum_moderator"
	RoleTutor          Role = "tutor"
)

// User is the wire shape of a platform account. The SDK treats it as an
// immutable value: it is only ever replaced whole by a new auth response.
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Roles               []Role    `json:"roles"`
	Track               *string   `json:"track,omitempty"`
	ScholarshipInterest bool      `json:"scholarshipInterest"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// HasAnyRole reports whether the user's role set intersects roles. An
// empty argument list matches any user.
func (u *User) HasAnyRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Result is the uniform envelope every client operation resolves to.
// Operations never return a Go error: transport and parse failures are
// folded into Success=false with Err set.
type Result struct {
	Success bool
	Message string
	Err     string
}

// AuthResult carries a user and access token on success.
type AuthResult struct {
	Result
	User  *User
	Token string
}

// UserResult carries the current user on success.
type UserResult struct {
	Result
	User *User
}

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	Track               string `json:"track,omitempty"`
	ScholarshipInterest bool   `json:"scholarshipInterest"`
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL of the API, DefaultBaseURL when empty.
	BaseURL string
	// Tokens supplies the bearer credential attached to every call.
	// The client reads it but never mutates it.
	Tokens TokenStore
	// HTTPClient defaults to http.DefaultClient. Timeout behavior is
	// delegated entirely to this transport.
	HTTPClient *http.Client
}

// Client issues requests against the auth API.
type Client struct {
	baseURL string
	tokens  TokenStore
	httpc   *http.Client
}

// NewClient constructs a client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{baseURL: baseURL, tokens: tokens, httpc: httpc}
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) AuthResult {
	env := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	return authResult(env)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) AuthResult {
	env := c.do(ctx, http.MethodPost, "/auth/register", payload)
	return authResult(env)
}

// ForgotPassword requests a password reset email. The backend responds
// identically whether or not the account exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) Result {
	env := c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email})
	return env.result()
}

// ResetPassword completes a password reset.
func (c *Client) ResetPassword(ctx context.Context, token, password, confirmPassword string) Result {
	env := c.do(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"token":           token,
		"password":        password,
		"confirmPassword": confirmPassword,
	})
	return env.result()
}

// RequestMagicLink requests a passwordless sign-in email.
func (c *Client) RequestMagicLink(ctx context.Context, email string) Result {
	env := c.do(ctx, http.MethodPost, "/auth/magic-link", map[string]string{"email": email})
	return env.result()
}

// VerifyMagicLink exchanges a sign-in link token for a session.
func (c *Client) VerifyMagicLink(ctx context.Context, token string) AuthResult {
	env := c.do(ctx, http.MethodGet, "/auth/verify-magic-link?token="+url.QueryEscape(token), nil)
	return authResult(env)
}

// CurrentUser fetches the account the stored token belongs to. It fails
// when the token is absent, invalid or expired.
func (c *Client) CurrentUser(ctx context.Context) UserResult {
	env := c.do(ctx, http.MethodGet, "/auth/me", nil)
	res := UserResult{Result: env.result()}
	if !res.Success {
		return res
	}
	var data struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.User == nil {
		return UserResult{Result: Result{Err: genericErrorMessage}}
	}
	res.User = data.User
	return res
}

// Logout asks the server to invalidate the stored token. Removing the
// token locally is the session's job, not the client's.
func (c *Client) Logout(ctx context.Context) Result {
	token, _ := c.tokens.Get()
	return c.logout(ctx, token)
}

func (c *Client) logout(ctx context.Context, token string) Result {
	env := c.request(ctx, http.MethodPost, "/auth/logout", nil, token)
	return env.result()
}

// wireEnvelope mirrors the platform response shape.
type wireEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`

	transportErr string
}

func (e wireEnvelope) result() Result {
	if e.transportErr != "" {
		return Result{Err: e.transportErr}
	}
	if !e.Success {
		msg := e.Error
		if msg == "" {
			msg = genericErrorMessage
		}
		return Result{Err: msg}
	}
	return Result{Success: true, Message: e.Message}
}

func authResult(env wireEnvelope) AuthResult {
	res := AuthResult{Result: env.result()}
	if !res.Success {
		return res
	}
	var data struct {
		User  *User  `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.User == nil || data.Token == "" {
		return AuthResult{Result: Result{Err: genericErrorMessage}}
	}
	res.User = data.User
	res.Token = data.Token
	return res
}

func (c *Client) do(ctx context.Context, method, path string, body any) wireEnvelope {
	token, _ := c.tokens.Get()
	return c.request(ctx, method, path, body, token)
}

// request performs one HTTP call and folds every failure mode into the
// envelope; it never panics and callers never see a raw error.
func (c *Client) request(ctx context.Context, method, path string, body any, token string) wireEnvelope {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return wireEnvelope{transportErr: genericErrorMessage}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return wireEnvelope{transportErr: genericErrorMessage}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return wireEnvelope{transportErr: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return wireEnvelope{transportErr: genericErrorMessage}
	}

	var env wireEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return wireEnvelope{transportErr: genericErrorMessage}
	}

	// A non-2xx status is a failure even when the body parses clean.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		env.Success = false
		if env.Error == "" {
			env.Error = genericErrorMessage
		}
	}
	return env
}
