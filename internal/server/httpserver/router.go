// Package httpserver provides the HTTP/HTTPS server for the estate
// service.
package httpserver

import (
	"net/http"

	"github.com/nainaland/estate-go/internal/core/service"
	"github.com/nainaland/estate-go/internal/server/httpserver/handler"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
	"github.com/nainaland/estate-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// AuthService handles login, logout, status, and gate checks.
	AuthService *service.AuthService

	// CatalogService handles property listings.
	CatalogService *service.CatalogService

	// BlogService handles blog posts.
	BlogService *service.BlogService

	// ContactService handles contact form submissions.
	ContactService *service.ContactService

	// Logger for request logging.
	Logger logger.Logger

	// Metrics records request metrics and serves /metrics.
	Metrics *metric.Registry

	// CookieName is the session cookie name.
	CookieName string

	// CookieSecure marks the session cookie Secure.
	CookieSecure bool
}

// NewRouter creates the HTTP router with all routes and middleware.
//
// Read endpoints are public. Content mutation goes through the gate; a
// request without a live session credential never reaches the handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(&handler.Config{
		AuthService:    cfg.AuthService,
		CatalogService: cfg.CatalogService,
		BlogService:    cfg.BlogService,
		ContactService: cfg.ContactService,
		Logger:         log,
		CookieName:     cfg.CookieName,
		CookieSecure:   cfg.CookieSecure,
	})

	base := []Middleware{
		RequestID(),
		Recover(log),
		Observe(log, cfg.Metrics),
	}

	public := func(fn http.HandlerFunc) http.Handler {
		return Chain(fn, base...)
	}

	gate := Gate(&GateConfig{
		AuthService: cfg.AuthService,
		CookieName:  cfg.CookieName,
		Logger:      log,
	})
	gated := func(fn http.HandlerFunc) http.Handler {
		return Chain(fn, append(append([]Middleware{}, base...), gate)...)
	}

	mux := http.NewServeMux()

	// Operational endpoints.
	mux.Handle("GET /healthz", public(h.Health))
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Authentication.
	mux.Handle("POST /api/auth/login", public(h.Login))
	mux.Handle("GET /api/auth/status", public(h.Status))
	mux.Handle("POST /api/auth/logout", public(h.Logout))

	// Property catalog. Specific paths before the {id} wildcard.
	mux.Handle("GET /api/properties", public(h.ListProperties))
	mux.Handle("GET /api/properties/featured", public(h.FeaturedProperties))
	mux.Handle("GET /api/properties/search", public(h.SearchProperties))
	mux.Handle("GET /api/properties/{id}", public(h.GetProperty))
	mux.Handle("POST /api/properties", gated(h.CreateProperty))

	// Blog.
	mux.Handle("GET /api/blog", public(h.ListBlogPosts))
	mux.Handle("GET /api/blog/recent", public(h.RecentBlogPosts))
	mux.Handle("GET /api/blog/{id}", public(h.GetBlogPost))
	mux.Handle("POST /api/blog", gated(h.CreateBlogPost))

	// Contact form.
	mux.Handle("POST /api/contact", public(h.SubmitContact))

	return mux
}
