package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nainaland/estate-go/internal/core/domain"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func writeFlat(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// fakeServer is a minimal stand-in for the auth endpoints. The
// loggedIn flag controls what the status endpoint reports.
type fakeServer struct {
	*httptest.Server
	loggedIn atomic.Bool
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{}
	mux := http.NewServeMux()

	// Auth responses are flat: user/token/authenticated live beside
	// success, not under a data key.
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "admin" || body.Password != "admin123" {
			writeEnvelope(w, http.StatusUnauthorized, false, "Invalid username or password", nil)
			return
		}
		fs.loggedIn.Store(true)
		writeFlat(w, http.StatusOK, map[string]any{
			"success":   true,
			"message":   "Login successful",
			"user":      map[string]any{"id": 1, "username": "admin"},
			"token":     "test-session-token",
			"expiresAt": time.Now().Add(time.Hour).UnixMilli(),
		})
	})

	mux.HandleFunc("GET /api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		if fs.loggedIn.Load() && r.Header.Get("Authorization") == "Bearer test-session-token" {
			writeFlat(w, http.StatusOK, map[string]any{
				"success":       true,
				"authenticated": true,
				"user":          map[string]any{"id": 1, "username": "admin"},
			})
			return
		}
		writeFlat(w, http.StatusOK, map[string]any{
			"success":       true,
			"authenticated": false,
		})
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		fs.loggedIn.Store(false)
		writeEnvelope(w, http.StatusOK, true, "Logged out successfully", nil)
	})

	mux.HandleFunc("GET /api/properties", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", []any{})
	})

	mux.HandleFunc("POST /api/properties", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-session-token" || !fs.loggedIn.Load() {
			writeEnvelope(w, http.StatusUnauthorized, false, "Unauthorized access. Please login first.", nil)
			return
		}
		writeEnvelope(w, http.StatusCreated, true, "Property created successfully", map[string]any{"id": 1})
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func newTestClient(t *testing.T, server string) *Client {
	t.Helper()

	c, err := New(Config{
		Server:     server,
		TokenStore: NewMemoryTokenStore(),
		Timeout:    2 * time.Second,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestClient_StartsUnknown(t *testing.T) {
	c := newTestClient(t, "localhost:5000")
	if got := c.State(); got != StateUnknown {
		t.Errorf("initial state = %v, want %v", got, StateUnknown)
	}
	if c.User() != nil {
		t.Error("initial user is not nil")
	}
}

func TestClient_LoginStoresToken(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs.URL)

	user, err := c.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("user = %q", user.Username)
	}
	if got := c.State(); got != StateAuthenticated {
		t.Errorf("state = %v, want %v", got, StateAuthenticated)
	}

	tok, err := c.store.Load()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if tok != "test-session-token" {
		t.Errorf("stored token = %q", tok)
	}
}

func TestClient_LoginFailure(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs.URL)

	if _, err := c.Login(context.Background(), "admin", "wrong"); err == nil {
		t.Fatal("login with wrong password succeeded")
	} else if err.Error() != "Invalid username or password" {
		t.Errorf("error = %q", err)
	}
}

func TestClient_RefreshSettlesState(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs.URL)

	if _, err := c.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	state, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if state != StateAuthenticated {
		t.Errorf("state after refresh = %v, want %v", state, StateAuthenticated)
	}

	// Server-side revocation is picked up on the next probe.
	fs.loggedIn.Store(false)
	state, err = c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh after revocation: %v", err)
	}
	if state != StateUnauthenticated {
		t.Errorf("state = %v, want %v", state, StateUnauthenticated)
	}
	if tok, _ := c.store.Load(); tok != "" {
		t.Errorf("token survived revocation: %q", tok)
	}
	if c.User() != nil {
		t.Error("user survived revocation")
	}
}

func TestClient_RefreshNetworkErrorKeepsUnknown(t *testing.T) {
	fs := newFakeServer(t)
	fs.Close()

	c := newTestClient(t, fs.URL)
	if _, err := c.Refresh(context.Background()); err == nil {
		t.Fatal("refresh against a dead server succeeded")
	}
	if got := c.State(); got != StateUnknown {
		t.Errorf("state = %v, want %v after network failure", got, StateUnknown)
	}
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs.URL)

	if _, err := c.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Revoke server side without the client knowing, then hit a gated
	// endpoint. The 401 settles the cache immediately.
	fs.loggedIn.Store(false)
	if _, err := c.CreateProperty(context.Background(), &domain.Property{Title: "Plot"}); err == nil {
		t.Fatal("create with revoked session succeeded")
	}
	if got := c.State(); got != StateUnauthenticated {
		t.Errorf("state = %v, want %v after 401", got, StateUnauthenticated)
	}
	if tok, _ := c.store.Load(); tok != "" {
		t.Errorf("token survived 401: %q", tok)
	}
}

func TestClient_LogoutIsIdempotent(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs.URL)

	if _, err := c.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
	if got := c.State(); got != StateUnauthenticated {
		t.Errorf("state = %v, want %v", got, StateUnauthenticated)
	}
}

func TestClient_WatchNotifiesOnChange(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan State, 4)
	go c.Watch(ctx, func(s State) {
		changes <- s
	})

	// The immediate probe settles Unknown to Unauthenticated.
	select {
	case s := <-changes:
		if s != StateUnauthenticated {
			t.Errorf("first change = %v, want %v", s, StateUnauthenticated)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watch produced no state change")
	}
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	if tok, err := store.Load(); err != nil {
		t.Fatalf("load missing: %v", err)
	} else if tok != "" {
		t.Errorf("missing file loaded %q", tok)
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, _ := store.Load(); tok != "abc123" {
		t.Errorf("load = %q, want abc123", tok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("load after clear = %q", tok)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateUnknown:         "unknown",
		StateChecking:        "checking",
		StateAuthenticated:   "authenticated",
		StateUnauthenticated: "unauthenticated",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
