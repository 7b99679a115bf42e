// Package handler provides HTTP request handlers for the estate
// service.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
)

// Login handles POST /api/auth/login.
//
// A successful login returns the session token in the body and also
// sets it as an httpOnly cookie, so both browser and API clients are
// served by the same endpoint.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Validation error")
		return
	}

	if req.Username == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "Validation error")
		return
	}

	result, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Message)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, result.Token)

	logger.L(r.Context()).Info("user logged in", "user_id", result.User.ID)

	h.writeBody(w, http.StatusOK, &LoginResponse{
		Success:   true,
		Message:   "Login successful",
		User:      result.User,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Status handles GET /api/auth/status.
//
// Always responds 200; the body says whether the caller holds a live
// session. Errors degrade to an unauthenticated result.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	identifier := h.extractCredential(r)

	result := h.authSvc.Status(r.Context(), identifier)

	h.writeBody(w, http.StatusOK, &StatusResponse{
		Success:       true,
		Authenticated: result.Authenticated,
		User:          result.User,
	})
}

// Logout handles POST /api/auth/logout.
//
// Idempotent: a missing or already-revoked credential still yields the
// success response, and the cookie is cleared either way.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identifier := h.extractCredential(r)

	if err := h.authSvc.Logout(r.Context(), identifier); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.clearSessionCookie(w)

	h.writeJSON(w, http.StatusOK, "Logged out successfully", nil)
}

// extractCredential pulls the session identifier from the request.
// The Authorization Bearer header wins over the session cookie.
func (h *Handler) extractCredential(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if cred := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); cred != "" {
			return cred
		}
	}

	if cookie, err := r.Cookie(h.cookieName); err == nil {
		return cookie.Value
	}

	return ""
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authSvc.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
