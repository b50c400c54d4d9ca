package authclient

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// tokenFileName is the fixed key the persisted token lives under.
const tokenFileName = "auth_token"

// TokenStore persists a single opaque bearer token. Implementations do
// not validate token shape and carry no expiry logic; expiry is decided
// by the backend rejecting the token.
type TokenStore interface {
	// Set persists the token, overwriting any existing value.
	Set(token string) error
	// Get returns the persisted token, or false if never set or cleared.
	Get() (string, bool)
	// Clear removes the token. Clearing an empty store is not an error.
	Clear() error
	// Has reports whether a token is present.
	Has() bool
}

// MemoryTokenStore keeps the token in process memory. Used by tests and
// short-lived tools.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryTokenStore constructs an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *MemoryTokenStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

func (s *MemoryTokenStore) Has() bool {
	_, ok := s.Get()
	return ok
}

// FileTokenStore persists the token as a single file under dir,
// surviving process restarts.
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore constructs a store rooted at dir. The directory is
// created on first Set.
func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{dir: dir}
}

func (s *FileTokenStore) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

func (s *FileTokenStore) Set(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0o600)
}

func (s *FileTokenStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileTokenStore) Has() bool {
	_, ok := s.Get()
	return ok
}
