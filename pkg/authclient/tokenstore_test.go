package authclient

import (
	"path/filepath"
	"testing"
)

func runTokenStoreContract(t *testing.T, store TokenStore) {
	t.Helper()

	if store.Has() {
		t.Fatal("fresh store reports a token")
	}
	if _, ok := store.Get(); ok {
		t.Fatal("fresh store returned a token")
	}

	// Clearing an empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}

	if err := store.Set("T1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := store.Get()
	if !ok || got != "T1" {
		t.Fatalf("Get() = %q, %v; want T1, true", got, ok)
	}
	if !store.Has() {
		t.Fatal("Has() false after set")
	}

	// Overwrite.
	if err := store.Set("T2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.Get(); got != "T2" {
		t.Fatalf("Get() after overwrite = %q, want T2", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Has() {
		t.Fatal("Has() true after clear")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestMemoryTokenStore(t *testing.T) {
	runTokenStoreContract(t, NewMemoryTokenStore())
}

func TestFileTokenStore(t *testing.T) {
	runTokenStoreContract(t, NewFileTokenStore(t.TempDir()))
}

func TestFileTokenStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "creds")
	store := NewFileTokenStore(dir)
	if err := store.Set("T1"); err != nil {
		t.Fatalf("set into missing directory: %v", err)
	}
	if got, ok := store.Get(); !ok || got != "T1" {
		t.Fatalf("Get() = %q, %v; want T1, true", got, ok)
	}
}

func TestFileTokenStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	if err := NewFileTokenStore(dir).Set("persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}
	reopened := NewFileTokenStore(dir)
	if got, ok := reopened.Get(); !ok || got != "persisted" {
		t.Fatalf("reopened Get() = %q, %v; want persisted, true", got, ok)
	}
}
