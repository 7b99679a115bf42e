// Package service provides domain services for the estate site.
package service

import (
	"context"
	"sort"
	"time"

	"github.com/nainaland/estate-go/internal/core/domain"
)

// DefaultRecentPosts is how many posts the news widget shows when no
// limit is requested.
const DefaultRecentPosts = 3

// BlogPostRepository defines the storage interface for blog posts.
type BlogPostRepository interface {
	// AllBlogPosts returns every post, oldest first.
	AllBlogPosts(ctx context.Context) ([]*domain.BlogPost, error)

	// GetBlogPost retrieves a post by id.
	// Returns ErrBlogPostNotFound if absent.
	GetBlogPost(ctx context.Context, id int64) (*domain.BlogPost, error)

	// GetBlogPostBySlug retrieves a post by slug.
	// Returns ErrBlogPostNotFound if absent.
	GetBlogPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)

	// CreateBlogPost stores a new post and assigns its id.
	// Returns ErrSlugConflict when the slug is taken.
	CreateBlogPost(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error)
}

// BlogService handles the public news section.
type BlogService struct {
	repo BlogPostRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(repo BlogPostRepository) *BlogService {
	return &BlogService{repo: repo}
}

// All returns every post.
func (s *BlogService) All(ctx context.Context) ([]*domain.BlogPost, error) {
	return s.repo.AllBlogPosts(ctx)
}

// Get retrieves a post by id.
func (s *BlogService) Get(ctx context.Context, id int64) (*domain.BlogPost, error) {
	return s.repo.GetBlogPost(ctx, id)
}

// GetBySlug retrieves a post by slug.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return s.repo.GetBlogPostBySlug(ctx, slug)
}

// Recent returns up to limit posts, newest first.
func (s *BlogService) Recent(ctx context.Context, limit int) ([]*domain.BlogPost, error) {
	if limit <= 0 {
		limit = DefaultRecentPosts
	}

	all, err := s.repo.AllBlogPosts(ctx)
	if err != nil {
		return nil, err
	}

	sorted := append([]*domain.BlogPost(nil), all...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Create validates and stores a new post.
func (s *BlogService) Create(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	if err := post.Validate(); err != nil {
		return nil, err
	}

	post.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.CreateBlogPost(ctx, post)
}
