// Package handler provides HTTP request handlers for the estate
// service.
package handler

import (
	"net/http"

	"github.com/nainaland/estate-go/internal/infra/buildinfo"
)

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, "", map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
