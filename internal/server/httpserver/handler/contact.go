// Package handler provides HTTP request handlers for the estate
// service.
package handler

import (
	"net/http"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
)

// SubmitContact handles POST /api/contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Validation error")
		return
	}

	submission := &domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	created, err := h.contactSvc.Submit(r.Context(), submission)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	logger.L(r.Context()).Info("contact submission received", "submission_id", created.ID)

	h.writeJSON(w, http.StatusCreated, "Thank you for contacting us. We will get back to you soon.", created)
}
