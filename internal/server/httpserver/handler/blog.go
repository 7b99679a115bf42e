// Package handler provides HTTP request handlers for the estate
// service.
package handler

import (
	"net/http"
	"strconv"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
)

// ListBlogPosts handles GET /api/blog.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogSvc.All(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "", posts)
}

// RecentBlogPosts handles GET /api/blog/recent.
func (h *Handler) RecentBlogPosts(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.URL.Query().Get("limit"))

	posts, err := h.blogSvc.Recent(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "", posts)
}

// GetBlogPost handles GET /api/blog/{id}.
// The path value is tried as a numeric id first, then as a slug.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")

	var post *domain.BlogPost
	var err error
	if id, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
		post, err = h.blogSvc.Get(r.Context(), id)
	} else {
		post, err = h.blogSvc.GetBySlug(r.Context(), raw)
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "", post)
}

// CreateBlogPost handles POST /api/blog. Gated.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var post domain.BlogPost
	if err := decodeBody(r, &post); err != nil {
		h.writeError(w, http.StatusBadRequest, "Validation error")
		return
	}

	created, err := h.blogSvc.Create(r.Context(), &post)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	logger.L(r.Context()).Info("blog post created", "post_id", created.ID, "slug", created.Slug)

	h.writeJSON(w, http.StatusCreated, "Blog post created successfully", created)
}
