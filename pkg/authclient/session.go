package authclient

import (
	"context"
	"sync"
)

// Session orchestrates the auth state machine: it owns one State,
// mutates it only through the reducer, and performs all the I/O (API
// calls, token storage) around those transitions.
//
// Construct one Session per running application and pass it by
// reference; tests construct independent instances per case.
//
// Concurrent operations are not queued: two Login calls racing resolve
// last-write-wins, whichever response lands last determines the final
// state. Acceptable for a UI driven by a single user; callers needing
// stricter ordering must serialize externally.
type Session struct {
	client *Client
	tokens TokenStore

	mu     sync.Mutex
	state  State
	closed bool
	subs   map[int]func(State)
	nextID int
}

// NewSession builds a session in the Initializing state, expecting a
// CheckAuth call to resolve it.
func NewSession(client *Client, tokens TokenStore) *Session {
	return &Session{
		client: client,
		tokens: tokens,
		state:  State{Loading: true},
		subs:   make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every state transition and
// returns an unsubscribe function.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close disposes the session. Async completions arriving after Close
// do not mutate state, mirroring the "still mounted" guard a UI
// provider needs.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// CheckAuth resolves the initial state. With no stored token it settles
// directly in Unauthenticated with no error and no network call; with
// one, it validates the token against the current-user endpoint,
// clearing the token if the server rejects it.
func (s *Session) CheckAuth(ctx context.Context) {
	if !s.tokens.Has() {
		s.dispatch(logoutAction{})
		return
	}

	s.dispatch(startAction{})
	res := s.client.CurrentUser(ctx)
	if res.Success {
		s.dispatch(successAction{user: res.User})
		return
	}
	_ = s.tokens.Clear()
	s.dispatch(failureAction{message: res.Err})
}

// Login authenticates and reports success. On success the token is
// persisted before the state transition; on failure the token store is
// untouched and the failure message lands in State.Err.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	s.dispatch(startAction{})
	res := s.client.Login(ctx, email, password)
	return s.finishAuth(res)
}

// Register creates an account and signs in. Symmetric to Login.
func (s *Session) Register(ctx context.Context, payload RegisterPayload) bool {
	s.dispatch(startAction{})
	res := s.client.Register(ctx, payload)
	return s.finishAuth(res)
}

// VerifyMagicLink signs in by consuming a sign-in link token.
func (s *Session) VerifyMagicLink(ctx context.Context, token string) bool {
	s.dispatch(startAction{})
	res := s.client.VerifyMagicLink(ctx, token)
	return s.finishAuth(res)
}

func (s *Session) finishAuth(res AuthResult) bool {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		// Disposed mid-flight: drop the completion entirely, token included.
		return false
	}
	if !res.Success {
		s.dispatch(failureAction{message: res.Err})
		return false
	}
	if err := s.tokens.Set(res.Token); err != nil {
		s.dispatch(failureAction{message: err.Error()})
		return false
	}
	s.dispatch(successAction{user: res.User})
	return true
}

// Logout clears the token and transitions to Unauthenticated
// synchronously. Server-side invalidation is best effort and does not
// gate the local transition.
func (s *Session) Logout() {
	token, had := s.tokens.Get()
	_ = s.tokens.Clear()
	s.dispatch(logoutAction{})

	if had {
		go func() {
			_ = s.client.logout(context.Background(), token)
		}()
	}
}

// ClearError drops the last failure message without changing phase.
// UIs call it before retrying so stale messages are not shown.
func (s *Session) ClearError() {
	s.dispatch(clearErrorAction{})
}

func (s *Session) dispatch(a action) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state = reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
