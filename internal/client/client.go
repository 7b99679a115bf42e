// Package client provides the API client with a cached session state.
//
// The client keeps the session token in a TokenStore and mirrors the
// server's view of the session in a small state machine. Callers read
// the cached state instead of hitting the status endpoint on every
// decision; a background Watch loop keeps the cache fresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
)

// DefaultPollInterval is how often the Watch loop probes session status.
const DefaultPollInterval = 10 * time.Second

// Config configures the Client.
type Config struct {
	// Server is the base URL, with or without scheme.
	Server string

	// TokenStore persists the session token. Defaults to in-memory.
	TokenStore TokenStore

	// PollInterval overrides DefaultPollInterval for the Watch loop.
	PollInterval time.Duration

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Logger for client diagnostics.
	Logger logger.Logger
}

// Client is an API client for the estate service.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     logger.Logger

	pollInterval time.Duration

	// limiter paces status probes so bursts of callers collapse into
	// one request per second at most.
	limiter *rate.Limiter

	state atomic.Int32

	mu   sync.RWMutex
	user *domain.PublicUser
}

// envelope mirrors the server's response format. Auth endpoints omit
// the data key and put their payload at the top level.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// New creates a new Client. The session state starts Unknown until the
// first Refresh.
func New(cfg Config) (*Client, error) {
	baseURL := cfg.Server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	store := cfg.TokenStore
	if store == nil {
		store = NewMemoryTokenStore()
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:      baseURL,
		store:        store,
		log:          log,
		pollInterval: pollInterval,
		limiter:      rate.NewLimiter(rate.Every(time.Second), 1),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
	c.state.Store(int32(StateUnknown))
	return c, nil
}

// State returns the cached session state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// User returns the cached authenticated user, or nil.
func (c *Client) User() *domain.PublicUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Login authenticates and stores the session token on success.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.PublicUser, error) {
	body := map[string]string{"username": username, "password": password}

	var data struct {
		User      domain.PublicUser `json:"user"`
		Token     string            `json:"token"`
		ExpiresAt int64             `json:"expiresAt"`
	}
	if err := c.post(ctx, "/api/auth/login", body, &data); err != nil {
		return nil, err
	}

	if err := c.store.Save(data.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}

	c.setAuthenticated(&data.User)
	c.log.Debug("login succeeded", "username", data.User.Username)
	return &data.User, nil
}

// Logout revokes the session and clears the cached token. Safe to call
// when already logged out.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/api/auth/logout", nil, nil)

	// Local state clears regardless; the server treats unknown tokens
	// as already logged out.
	if clearErr := c.store.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	c.setUnauthenticated()

	return err
}

// Refresh probes the server for session status and updates the cache.
// Probes are rate limited; concurrent callers share the outcome of
// whatever probe lands.
func (c *Client) Refresh(ctx context.Context) (State, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return c.State(), err
	}

	c.state.CompareAndSwap(int32(StateUnknown), int32(StateChecking))

	var data struct {
		Authenticated bool               `json:"authenticated"`
		User          *domain.PublicUser `json:"user"`
	}
	if err := c.get(ctx, "/api/auth/status", &data); err != nil {
		// Network failure: keep the last settled state rather than
		// flapping to unauthenticated.
		if c.State() == StateChecking {
			c.state.Store(int32(StateUnknown))
		}
		return c.State(), err
	}

	if data.Authenticated && data.User != nil {
		c.setAuthenticated(data.User)
	} else {
		c.store.Clear()
		c.setUnauthenticated()
	}
	return c.State(), nil
}

// Watch runs the status poll loop until the context is canceled. An
// immediate probe runs first so callers see a settled state quickly.
func (c *Client) Watch(ctx context.Context, onChange func(State)) {
	prev := c.State()
	notify := func(s State) {
		if s != prev {
			prev = s
			if onChange != nil {
				onChange(s)
			}
		}
	}

	if s, err := c.Refresh(ctx); err == nil {
		notify(s)
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s, err := c.Refresh(ctx)
			if err != nil {
				c.log.Debug("status poll failed", "error", err)
				continue
			}
			notify(s)
		}
	}
}

func (c *Client) setAuthenticated(user *domain.PublicUser) {
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	c.state.Store(int32(StateAuthenticated))
}

func (c *Client) setUnauthenticated() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
	c.state.Store(int32(StateUnauthenticated))
}

// get performs a GET request and decodes the envelope data.
func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, target)
}

// post performs a POST request with a JSON body and decodes the
// envelope data.
func (c *Client) post(ctx context.Context, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, target)
}

// do executes the request with the stored token attached. A 401
// response clears the token and settles the cache on Unauthenticated
// before the error is returned.
func (c *Client) do(req *http.Request, target any) error {
	if token, err := c.store.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", "estate-cli/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.store.Clear()
		c.setUnauthenticated()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		if env.Message != "" {
			return fmt.Errorf("%s", env.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if target != nil {
		// The auth endpoints respond flat; everything else nests the
		// payload under data.
		raw := []byte(env.Data)
		if env.Data == nil {
			raw = body
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}
