package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/storage/memory"
)

func seedCatalog(t *testing.T) *CatalogService {
	t.Helper()

	store := memory.NewStore()
	svc := NewCatalogService(store)
	ctx := context.Background()

	listings := []*domain.Property{
		{Title: "Highland Park Plot", Description: "Open land", Price: 2500000, Location: "Panvel",
			Address: "Plot 14", Area: 5, AreaUnit: domain.AreaUnitGunta, PropertyType: "land",
			Featured: true, ImageURLs: []string{"u1"}},
		{Title: "Downtown Acre", Description: "Corner plot", Price: 8000000, Location: "Khopoli",
			Address: "Survey 8", Area: 1, AreaUnit: domain.AreaUnitAcre, PropertyType: "land",
			ImageURLs: []string{"u2"}},
		{Title: "Lakefront Villa", Description: "4 bedroom villa", Price: 9500000, Location: "Karjat",
			Address: "Villa 2", Area: 3200, AreaUnit: domain.AreaUnitSqft, PropertyType: "villa",
			Featured: true, ImageURLs: []string{"u3"}},
	}
	for _, p := range listings {
		if _, err := svc.Create(ctx, p); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}
	return svc
}

func TestCatalog_Featured(t *testing.T) {
	svc := seedCatalog(t)
	ctx := context.Background()

	featured, err := svc.Featured(ctx, 0)
	if err != nil {
		t.Fatalf("Featured failed: %v", err)
	}
	if len(featured) != 2 {
		t.Fatalf("featured count = %d, want 2", len(featured))
	}
	for _, p := range featured {
		if !p.Featured {
			t.Errorf("non-featured listing returned: %s", p.Title)
		}
	}

	one, err := svc.Featured(ctx, 1)
	if err != nil {
		t.Fatalf("Featured(1) failed: %v", err)
	}
	if len(one) != 1 {
		t.Errorf("limited featured count = %d, want 1", len(one))
	}
}

func TestCatalog_Search(t *testing.T) {
	svc := seedCatalog(t)
	ctx := context.Background()

	tests := []struct {
		query string
		want  int
	}{
		{"villa", 1},
		{"VILLA", 1},
		{"land", 2},
		{"karjat", 1},
		{"beachfront", 0},
	}
	for _, tt := range tests {
		got, err := svc.Search(ctx, tt.query)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("Search(%q) = %d results, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestCatalog_SearchRequiresQuery(t *testing.T) {
	svc := seedCatalog(t)

	_, err := svc.Search(context.Background(), "")
	if !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("error = %v, want ErrMissingArgument", err)
	}
}

func TestCatalog_CreateValidates(t *testing.T) {
	svc := NewCatalogService(memory.NewStore())

	_, err := svc.Create(context.Background(), &domain.Property{Title: "No price"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCatalog_CreateSetsDefaults(t *testing.T) {
	svc := NewCatalogService(memory.NewStore())

	created, err := svc.Create(context.Background(), &domain.Property{
		Title: "Plot", Description: "d", Price: 100, Location: "l", Address: "a",
		Area: 10, PropertyType: "land", ImageURLs: []string{"u"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.AreaUnit != domain.AreaUnitSqft {
		t.Errorf("AreaUnit = %q, want sqft default", created.AreaUnit)
	}
	if created.CreatedAt == "" {
		t.Error("CreatedAt not set")
	}
}
