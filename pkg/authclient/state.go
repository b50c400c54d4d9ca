package authclient

// Phase names the three auth states a session can be in.
type Phase int

const (
	// PhaseInitializing: an auth operation is in flight, no user yet.
	PhaseInitializing Phase = iota
	// PhaseAuthenticated: a user is signed in.
	PhaseAuthenticated
	// PhaseUnauthenticated: signed out, possibly with a failure message.
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// State is the auth state container. Invariants held after every
// transition: Authenticated implies User != nil and Err == ""; not
// Authenticated implies User == nil; Loading and Authenticated are
// never true together.
type State struct {
	User          *User
	Authenticated bool
	Loading       bool
	Err           string
}

// Phase derives the named phase from the state fields.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseInitializing
	case s.Authenticated:
		return PhaseAuthenticated
	default:
		return PhaseUnauthenticated
	}
}

// action is the tagged union consumed by the reducer.
type action interface {
	isAction()
}

type startAction struct{}
type successAction struct{ user *User }
type failureAction struct{ message string }
type logoutAction struct{}
type clearErrorAction struct{}

func (startAction) isAction()      {}
func (successAction) isAction()    {}
func (failureAction) isAction()    {}
func (logoutAction) isAction()     {}
func (clearErrorAction) isAction() {}

// reduce is the pure transition function. All I/O stays in Session.
func reduce(s State, a action) State {
	switch a := a.(type) {
	case startAction:
		return State{Loading: true}
	case successAction:
		return State{User: a.user, Authenticated: true}
	case failureAction:
		return State{Err: a.message}
	case logoutAction:
		return State{}
	case clearErrorAction:
		s.Err = ""
		return s
	default:
		return s
	}
}
