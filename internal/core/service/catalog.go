// Package service provides domain services for the estate site.
package service

import (
	"context"
	"time"

	"github.com/nainaland/estate-go/internal/core/domain"
)

// DefaultFeaturedLimit is how many featured listings the home page
// carousel shows when no limit is requested.
const DefaultFeaturedLimit = 4

// PropertyRepository defines the storage interface for property
// listings.
type PropertyRepository interface {
	// AllProperties returns every listing, oldest first.
	AllProperties(ctx context.Context) ([]*domain.Property, error)

	// GetProperty retrieves a listing by id.
	// Returns ErrPropertyNotFound if absent.
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)

	// CreateProperty stores a new listing and assigns its id.
	CreateProperty(ctx context.Context, p *domain.Property) (*domain.Property, error)
}

// CatalogService handles the public property catalog.
type CatalogService struct {
	repo PropertyRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo PropertyRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// All returns every listing.
func (s *CatalogService) All(ctx context.Context) ([]*domain.Property, error) {
	return s.repo.AllProperties(ctx)
}

// Get retrieves a listing by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Property, error) {
	return s.repo.GetProperty(ctx, id)
}

// Featured returns up to limit featured listings. A non-positive limit
// falls back to the default.
func (s *CatalogService) Featured(ctx context.Context, limit int) ([]*domain.Property, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	all, err := s.repo.AllProperties(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]*domain.Property, 0, limit)
	for _, p := range all {
		if !p.Featured {
			continue
		}
		featured = append(featured, p)
		if len(featured) == limit {
			break
		}
	}
	return featured, nil
}

// Search returns listings matching a free-text query.
func (s *CatalogService) Search(ctx context.Context, query string) ([]*domain.Property, error) {
	if query == "" {
		return nil, domain.ErrMissingArgument.WithDetails("search query is required")
	}

	all, err := s.repo.AllProperties(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Property, 0)
	for _, p := range all {
		if p.MatchesQuery(query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Create validates and stores a new listing.
func (s *CatalogService) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.CreateProperty(ctx, p)
}
