// Package handler provides HTTP request handlers for the estate
// service.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
)

// ListProperties handles GET /api/properties.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.catalogSvc.All(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "", properties)
}

// FeaturedProperties handles GET /api/properties/featured.
// The optional limit query parameter caps the result count.
func (h *Handler) FeaturedProperties(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.URL.Query().Get("limit"))

	properties, err := h.catalogSvc.Featured(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "", properties)
}

// SearchProperties handles GET /api/properties/search?q=...
func (h *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	properties, err := h.catalogSvc.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrMissingArgument) {
			h.writeError(w, http.StatusBadRequest, "Search query is required")
			return
		}
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "", properties)
}

// GetProperty handles GET /api/properties/{id}.
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid property ID")
		return
	}

	property, err := h.catalogSvc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "", property)
}

// CreateProperty handles POST /api/properties. Gated.
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var property domain.Property
	if err := decodeBody(r, &property); err != nil {
		h.writeError(w, http.StatusBadRequest, "Validation error")
		return
	}

	created, err := h.catalogSvc.Create(r.Context(), &property)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	logger.L(r.Context()).Info("property created", "property_id", created.ID)

	h.writeJSON(w, http.StatusCreated, "Property created successfully", created)
}

// parseLimit parses a limit query parameter. Zero means "use the
// service default"; garbage is treated the same way.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
