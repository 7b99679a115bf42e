package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nainaland/estate-go/internal/core/service"
	"github.com/nainaland/estate-go/internal/storage/memory"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
	"github.com/nainaland/estate-go/internal/telemetry/metric"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	sessions := memory.NewSessionRegistry()
	authSvc := service.NewAuthService(store, sessions, nil, service.AuthConfig{})

	if _, err := authSvc.CreateUser(context.Background(), "admin", "admin123", "admin@nainaland.com"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return NewRouter(&RouterConfig{
		AuthService:    authSvc,
		CatalogService: service.NewCatalogService(store),
		BlogService:    service.NewBlogService(store),
		ContactService: service.NewContactService(store),
		Logger:         logger.Default(),
		Metrics:        metric.NewRegistry(),
		CookieName:     "auth_token",
	})
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, decorate func(*http.Request)) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if decorate != nil {
		decorate(req)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	rec, _ := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin", "password": "admin123"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}

	// The login body is flat: token at the top level, not under data.
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if body.Token == "" {
		t.Fatal("login returned no token")
	}
	return body.Token
}

func sampleListing() map[string]any {
	return map[string]any{
		"title":        "Hillside Plot",
		"description":  "Five gunta plot with road access",
		"price":        3200000,
		"location":     "Panvel",
		"address":      "Survey 12, Hillside",
		"area":         5,
		"areaUnit":     "gunta",
		"propertyType": "land",
		"forSale":      true,
		"imageUrls":    []string{"https://example.com/hillside.jpg"},
	}
}

// TestAdminWorkflow walks the full admin path: login, verify status,
// publish a listing, logout, and confirm the token is dead.
func TestAdminWorkflow(t *testing.T) {
	router := newTestRouter(t)

	// Login and capture both the token and the session cookie. The body
	// is flat: user and token sit beside success, not under data.
	rec, resp := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin", "password": "admin123"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	if !resp.Success {
		t.Fatal("login success = false")
	}

	var loginData struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginData); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if loginData.User.Username != "admin" {
		t.Errorf("login user = %q", loginData.User.Username)
	}

	cookies := rec.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "auth_token" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("login set no auth_token cookie")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie is not httpOnly")
	}
	if sessionCookie.Value != loginData.Token {
		t.Error("cookie value differs from the body token")
	}

	withToken := func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+loginData.Token)
	}

	// Status shows the authenticated user, flat like login.
	rec, _ = doJSON(t, router, http.MethodGet, "/api/auth/status", nil, withToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("status status = %d", rec.Code)
	}
	var statusData struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &statusData); err != nil {
		t.Fatalf("decode status body: %v", err)
	}
	if !statusData.Authenticated {
		t.Fatal("status reports unauthenticated after login")
	}

	// Publish a listing.
	rec, resp = doJSON(t, router, http.MethodPost, "/api/properties", sampleListing(), withToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create property status = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("decode created property: %v", err)
	}
	if created.ID == 0 {
		t.Error("created property has no id")
	}

	// The listing is publicly visible.
	rec, _ = doJSON(t, router, http.MethodGet, "/api/properties", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("list properties status = %d", rec.Code)
	}

	// Logout revokes the token and clears the cookie.
	rec, resp = doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, withToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if resp.Message != "Logged out successfully" {
		t.Errorf("logout message = %q", resp.Message)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout did not clear the session cookie")
	}

	// The token is dead now.
	rec, resp = doJSON(t, router, http.MethodPost, "/api/properties", sampleListing(), withToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout create status = %d, want 401", rec.Code)
	}
	if resp.Message != "Unauthorized access. Please login first." {
		t.Errorf("post-logout message = %q", resp.Message)
	}

	// Status degrades to unauthenticated rather than failing.
	rec, _ = doJSON(t, router, http.MethodGet, "/api/auth/status", nil, withToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("post-logout status status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &statusData); err != nil {
		t.Fatalf("decode status body: %v", err)
	}
	if statusData.Authenticated {
		t.Error("status reports authenticated after logout")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin", "password": "wrong"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if resp.Message != "Invalid username or password" {
		t.Errorf("message = %q", resp.Message)
	}

	// Unknown user reads identically.
	rec2, resp2 := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "ghost", "password": "admin123"}, nil)
	if rec2.Code != rec.Code || resp2.Message != resp.Message {
		t.Errorf("unknown-user response differs: %d %q", rec2.Code, resp2.Message)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp.Message != "Validation error" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !resp.Success {
		t.Error("anonymous logout not successful")
	}
}

func TestProperties_PublicReads(t *testing.T) {
	router := newTestRouter(t)
	tok := login(t, router)
	withToken := func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	if rec, _ := doJSON(t, router, http.MethodPost, "/api/properties", sampleListing(), withToken); rec.Code != http.StatusCreated {
		t.Fatalf("seed create status = %d", rec.Code)
	}

	rec, resp := doJSON(t, router, http.MethodGet, "/api/properties", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listings []json.RawMessage
	if err := json.Unmarshal(resp.Data, &listings); err != nil {
		t.Fatalf("decode listings: %v", err)
	}
	if len(listings) != 1 {
		t.Errorf("listing count = %d, want 1", len(listings))
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/properties/1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec, resp = doJSON(t, router, http.MethodGet, "/api/properties/999", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing listing status = %d, want 404", rec.Code)
	}
	if resp.Message != "Property not found" {
		t.Errorf("message = %q", resp.Message)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/properties/search?q=hillside", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("search status = %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/properties/search", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty search status = %d, want 400", rec.Code)
	}
}

func TestBlog_IDAndSlugLookup(t *testing.T) {
	router := newTestRouter(t)
	tok := login(t, router)
	withToken := func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	post := map[string]any{
		"title":   "Five things to check before buying a plot",
		"slug":    "five-things-before-buying",
		"content": "Due diligence saves money.",
		"author":  "Nainaland Team",
	}
	rec, _ := doJSON(t, router, http.MethodPost, "/api/blog", post, withToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post status = %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/blog/1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("id lookup status = %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/blog/five-things-before-buying", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("slug lookup status = %d", rec.Code)
	}

	rec, resp := doJSON(t, router, http.MethodGet, "/api/blog/no-such-post", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d, want 404", rec.Code)
	}
	if resp.Message != "Blog post not found" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestContact_Submission(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Asha",
		"email":   "asha@example.com",
		"phone":   "9000000000",
		"message": "Interested in the hillside plot",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact status = %d: %s", rec.Code, rec.Body.String())
	}
	if !resp.Success {
		t.Error("contact success = false")
	}

	rec, resp = doJSON(t, router, http.MethodPost, "/api/contact", map[string]string{
		"name": "No Email",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid contact status = %d, want 400", rec.Code)
	}
	if resp.Success {
		t.Error("invalid contact success = true")
	}
}

// TestAuthResponseShape pins the wire format of the auth endpoints:
// their payloads are flat, while catalog responses nest under data.
func TestAuthResponseShape(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin", "password": "admin123"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}

	var loginBody map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	for _, key := range []string{"success", "user", "token", "expiresAt"} {
		if _, ok := loginBody[key]; !ok {
			t.Errorf("login body missing top-level %q: %s", key, rec.Body.String())
		}
	}
	if _, ok := loginBody["data"]; ok {
		t.Errorf("login body nests payload under data: %s", rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/auth/status", nil, nil)
	var statusBody map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &statusBody); err != nil {
		t.Fatalf("decode status body: %v", err)
	}
	if _, ok := statusBody["authenticated"]; !ok {
		t.Errorf("status body missing top-level authenticated: %s", rec.Body.String())
	}
	if _, ok := statusBody["data"]; ok {
		t.Errorf("status body nests payload under data: %s", rec.Body.String())
	}

	// Catalog endpoints keep the envelope.
	rec, resp := doJSON(t, router, http.MethodGet, "/api/properties", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if !resp.Success || resp.Data == nil {
		t.Errorf("property list lost the envelope: %s", rec.Body.String())
	}
}

func TestGetProperty_InvalidID(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/properties/abc", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp.Message != "Invalid property ID" {
		t.Errorf("message = %q", resp.Message)
	}
}

// TestRouterWithoutLogger builds the router with no logger configured;
// requests must still be served, not panic in the middleware.
func TestRouterWithoutLogger(t *testing.T) {
	store := memory.NewStore()
	sessions := memory.NewSessionRegistry()
	authSvc := service.NewAuthService(store, sessions, nil, service.AuthConfig{})

	router := NewRouter(&RouterConfig{
		AuthService:    authSvc,
		CatalogService: service.NewCatalogService(store),
		BlogService:    service.NewBlogService(store),
		ContactService: service.NewContactService(store),
		CookieName:     "auth_token",
	})

	rec, resp := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !resp.Success {
		t.Error("health success = false")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !resp.Success {
		t.Error("health success = false")
	}
}
