// Package handler provides HTTP request handlers for the estate
// service.
//
// This package implements the public JSON API: authentication, the
// property catalog, blog posts, and the contact form.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/core/service"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
)

// Config holds the handler dependencies.
type Config struct {
	AuthService    *service.AuthService
	CatalogService *service.CatalogService
	BlogService    *service.BlogService
	ContactService *service.ContactService
	Logger         logger.Logger
	CookieName     string
	CookieSecure   bool
}

// Handler implements the HTTP API endpoints.
type Handler struct {
	authSvc      *service.AuthService
	catalogSvc   *service.CatalogService
	blogSvc      *service.BlogService
	contactSvc   *service.ContactService
	logger       logger.Logger
	cookieName   string
	cookieSecure bool
}

// New creates a new Handler with the given services.
func New(cfg *Config) *Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		authSvc:      cfg.AuthService,
		catalogSvc:   cfg.CatalogService,
		blogSvc:      cfg.BlogService,
		contactSvc:   cfg.ContactService,
		logger:       log,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
	}
}

// writeJSON writes a success response in the standard envelope.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(&Response{
		Success: true,
		Message: message,
		Data:    data,
	}); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeBody writes a JSON body as-is, for the auth endpoints whose
// response shape is flat rather than enveloped.
func (h *Handler) writeBody(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a failure response in the standard envelope.
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Message: message,
	})
}

// handleServiceError converts service errors to HTTP responses. Clients
// see the plain message; the error code only picks the status.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) {
		h.writeError(w, errorCodeToHTTPStatus(de.Code), de.Message)
		return
	}

	logger.L(r.Context()).Error("internal error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "Internal server error")
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasPrefix(code, "NL-AUTH-"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"), strings.HasSuffix(code, "-4091"):
		return http.StatusConflict
	case strings.HasPrefix(code, "NL-ARG-"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body into target.
func decodeBody(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
