package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/storage/memory"
)

func TestBlog_Recent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	// Seed with explicit timestamps so the order is unambiguous.
	posts := []*domain.BlogPost{
		{Title: "Oldest", Slug: "oldest", Content: "c", CreatedAt: "2025-01-01T00:00:00Z"},
		{Title: "Middle", Slug: "middle", Content: "c", CreatedAt: "2025-03-01T00:00:00Z"},
		{Title: "Newest", Slug: "newest", Content: "c", CreatedAt: "2025-06-01T00:00:00Z"},
		{Title: "Ancient", Slug: "ancient", Content: "c", CreatedAt: "2024-01-01T00:00:00Z"},
	}
	for _, p := range posts {
		if _, err := store.CreateBlogPost(ctx, p); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}

	svc := NewBlogService(store)

	recent, err := svc.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != DefaultRecentPosts {
		t.Fatalf("len = %d, want default %d", len(recent), DefaultRecentPosts)
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if recent[i].Slug != want {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].Slug, want)
		}
	}

	two, err := svc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent(2) failed: %v", err)
	}
	if len(two) != 2 || two[0].Slug != "newest" {
		t.Errorf("Recent(2) = %v", two)
	}
}

func TestBlog_GetByIDOrSlug(t *testing.T) {
	store := memory.NewStore()
	svc := NewBlogService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.BlogPost{
		Title: "Guide", Slug: "plot-buying-guide", Content: "c",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byID, err := svc.Get(ctx, created.ID)
	if err != nil || byID.Slug != "plot-buying-guide" {
		t.Errorf("Get = %+v, %v", byID, err)
	}

	bySlug, err := svc.GetBySlug(ctx, "plot-buying-guide")
	if err != nil || bySlug.ID != created.ID {
		t.Errorf("GetBySlug = %+v, %v", bySlug, err)
	}

	if _, err := svc.Get(ctx, 999); !errors.Is(err, domain.ErrBlogPostNotFound) {
		t.Errorf("error = %v, want ErrBlogPostNotFound", err)
	}
}

func TestBlog_CreateValidates(t *testing.T) {
	svc := NewBlogService(memory.NewStore())

	_, err := svc.Create(context.Background(), &domain.BlogPost{Title: "No slug"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
