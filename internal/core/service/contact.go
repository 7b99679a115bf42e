// Package service provides domain services for the estate site.
package service

import (
	"context"
	"time"

	"github.com/nainaland/estate-go/internal/core/domain"
)

// ContactRepository defines the storage interface for contact form
// submissions.
type ContactRepository interface {
	// CreateContactSubmission stores a submission and assigns its id.
	CreateContactSubmission(ctx context.Context, c *domain.ContactSubmission) (*domain.ContactSubmission, error)
}

// ContactService handles visitor contact form submissions.
type ContactService struct {
	repo ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Submit validates and stores a contact submission.
func (s *ContactService) Submit(ctx context.Context, c *domain.ContactSubmission) (*domain.ContactSubmission, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.CreateContactSubmission(ctx, c)
}
