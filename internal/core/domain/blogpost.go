// Package domain defines the core domain models for the estate service.
package domain

import "strings"

// BlogPost represents an article in the site's news section.
type BlogPost struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`

	// Slug is the unique URL-friendly lookup key.
	Slug string `json:"slug"`

	Content  string `json:"content"`
	Summary  string `json:"summary"`
	Author   string `json:"author"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`

	// CreatedAt is an RFC 3339 timestamp assigned at creation.
	CreatedAt string `json:"createdAt"`
}

// Validate validates the post fields.
func (b *BlogPost) Validate() error {
	var violations []string

	if strings.TrimSpace(b.Title) == "" {
		violations = append(violations, "title is required")
	}
	if strings.TrimSpace(b.Slug) == "" {
		violations = append(violations, "slug is required")
	}
	if strings.ContainsAny(b.Slug, " /") {
		violations = append(violations, "slug must not contain spaces or slashes")
	}
	if strings.TrimSpace(b.Content) == "" {
		violations = append(violations, "content is required")
	}
	if strings.TrimSpace(b.Summary) == "" {
		violations = append(violations, "summary is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		violations = append(violations, "author is required")
	}
	if strings.TrimSpace(b.Category) == "" {
		violations = append(violations, "category is required")
	}
	if strings.TrimSpace(b.ImageURL) == "" {
		violations = append(violations, "imageUrl is required")
	}

	if len(violations) > 0 {
		return ErrValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// Clone creates a copy of the post.
func (b *BlogPost) Clone() *BlogPost {
	clone := *b
	return &clone
}
