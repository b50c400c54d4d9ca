package authclient

import (
	"context"
	"net/http"
	"testing"
)

func TestClientNon2xxIsFailureEvenWhenBodyParses(t *testing.T) {
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		// Deliberately inconsistent: 500 status with success:true body.
		writeEnvelope(w, http.StatusInternalServerError, map[string]any{
			"success": true,
			"data":    map[string]any{"user": stubUser(), "token": "T1"},
		})
	})
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: NewMemoryTokenStore()})

	res := client.Login(context.Background(), "a@x.com", "pw")
	if res.Success {
		t.Fatal("non-2xx response treated as success")
	}
	if res.Err == "" {
		t.Fatal("expected a failure message")
	}
}

func TestClientTransportFailureNeverPanics(t *testing.T) {
	// Point at a closed server.
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {})
	url := srv.URL
	srv.Close()

	client := NewClient(ClientConfig{BaseURL: url, Tokens: NewMemoryTokenStore()})
	res := client.Login(context.Background(), "a@x.com", "pw")
	if res.Success {
		t.Fatal("transport failure reported as success")
	}
	if res.Err == "" {
		t.Fatal("transport failure lost its message")
	}
}

func TestClientNonJSONBodyIsGenericFailure(t *testing.T) {
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: NewMemoryTokenStore()})

	res := client.CurrentUser(context.Background())
	if res.Success {
		t.Fatal("unparseable body reported as success")
	}
	if res.Err != genericErrorMessage {
		t.Fatalf("Err = %q, want generic message", res.Err)
	}
}

func TestClientAttachesStoredBearerToken(t *testing.T) {
	var gotHeader string
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true, "message": "ok",
		})
	})
	tokens := NewMemoryTokenStore()
	_ = tokens.Set("T9")
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: tokens})

	client.ForgotPassword(context.Background(), "a@x.com")
	if gotHeader != "Bearer T9" {
		t.Fatalf("Authorization = %q, want Bearer T9", gotHeader)
	}
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var gotHeader string
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true})
	})
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: NewMemoryTokenStore()})

	client.ForgotPassword(context.Background(), "a@x.com")
	if gotHeader != "" {
		t.Fatalf("Authorization = %q, want empty", gotHeader)
	}
}

func TestClientDoesNotMutateTokenStore(t *testing.T) {
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user": stubUser(), "token": "NEW"},
		})
	})
	tokens := NewMemoryTokenStore()
	_ = tokens.Set("OLD")
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: tokens})

	res := client.Login(context.Background(), "a@x.com", "pw")
	if !res.Success || res.Token != "NEW" {
		t.Fatalf("unexpected result %+v", res)
	}
	// Persisting the new token is the session's responsibility.
	if got, _ := tokens.Get(); got != "OLD" {
		t.Fatalf("client mutated the token store: %q", got)
	}
}

func TestVerifyMagicLinkEscapesToken(t *testing.T) {
	var gotQuery string
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("token")
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user": stubUser(), "token": "T1"},
		})
	})
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: NewMemoryTokenStore()})

	res := client.VerifyMagicLink(context.Background(), "a b&c")
	if !res.Success {
		t.Fatalf("verify failed: %q", res.Err)
	}
	if gotQuery != "a b&c" {
		t.Fatalf("token round-trip = %q, want a b&c", gotQuery)
	}
}

func TestAuthResultRejectsIncompleteData(t *testing.T) {
	srv, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		// success envelope with no token
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user": stubUser()},
		})
	})
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: NewMemoryTokenStore()})

	res := client.Login(context.Background(), "a@x.com", "pw")
	if res.Success {
		t.Fatal("missing token accepted as success")
	}
}
