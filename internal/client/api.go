// Package client provides the API client with a cached session state.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nainaland/estate-go/internal/core/domain"
)

// Properties returns all property listings.
func (c *Client) Properties(ctx context.Context) ([]*domain.Property, error) {
	var result []*domain.Property
	if err := c.get(ctx, "/api/properties", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Property returns one listing by id.
func (c *Client) Property(ctx context.Context, id int64) (*domain.Property, error) {
	var result domain.Property
	if err := c.get(ctx, "/api/properties/"+strconv.FormatInt(id, 10), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FeaturedProperties returns featured listings. Zero limit uses the
// server default.
func (c *Client) FeaturedProperties(ctx context.Context, limit int) ([]*domain.Property, error) {
	path := "/api/properties/featured"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var result []*domain.Property
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchProperties searches listings by free text.
func (c *Client) SearchProperties(ctx context.Context, query string) ([]*domain.Property, error) {
	var result []*domain.Property
	path := "/api/properties/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateProperty creates a listing. Requires a live session.
func (c *Client) CreateProperty(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	var result domain.Property
	if err := c.post(ctx, "/api/properties", p, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BlogPosts returns all blog posts.
func (c *Client) BlogPosts(ctx context.Context) ([]*domain.BlogPost, error) {
	var result []*domain.BlogPost
	if err := c.get(ctx, "/api/blog", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RecentBlogPosts returns the most recent posts. Zero limit uses the
// server default.
func (c *Client) RecentBlogPosts(ctx context.Context, limit int) ([]*domain.BlogPost, error) {
	path := "/api/blog/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var result []*domain.BlogPost
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// BlogPost returns one post by numeric id or slug.
func (c *Client) BlogPost(ctx context.Context, idOrSlug string) (*domain.BlogPost, error) {
	var result domain.BlogPost
	if err := c.get(ctx, "/api/blog/"+url.PathEscape(idOrSlug), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateBlogPost creates a post. Requires a live session.
func (c *Client) CreateBlogPost(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	var result domain.BlogPost
	if err := c.post(ctx, "/api/blog", post, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitContact sends a contact form submission.
func (c *Client) SubmitContact(ctx context.Context, sub *domain.ContactSubmission) error {
	return c.post(ctx, "/api/contact", sub, nil)
}

// Health checks server liveness.
func (c *Client) Health(ctx context.Context) error {
	var data struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/healthz", &data); err != nil {
		return err
	}
	if data.Status != "ok" {
		return fmt.Errorf("server unhealthy: %s", data.Status)
	}
	return nil
}
