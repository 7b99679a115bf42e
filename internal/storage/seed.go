// Package storage provides storage backends and startup seeding for the
// estate service.
package storage

import (
	"context"
	"time"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/core/service"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
	"github.com/nainaland/estate-go/pkg/password"
)

// SeedConfig controls startup seeding.
type SeedConfig struct {
	// AdminUsername and AdminPassword create the initial admin account.
	AdminUsername string
	AdminPassword string

	// SampleData loads demo listings and posts when the store is empty.
	SampleData bool
}

// Seed ensures the admin account exists and optionally loads sample
// content. It is idempotent: a store that already has the data is left
// untouched, so it is safe against the persistent backend too.
func Seed(ctx context.Context, users service.UserRepository, props service.PropertyRepository, posts service.BlogPostRepository, cfg SeedConfig, log logger.Logger) error {
	if log == nil {
		log = logger.Default()
	}

	if cfg.AdminUsername != "" {
		existing, err := users.FindByUsername(ctx, cfg.AdminUsername)
		if err != nil {
			return err
		}
		if existing == nil {
			hash, err := password.Hash(cfg.AdminPassword)
			if err != nil {
				return err
			}
			admin := &domain.User{
				Username:     cfg.AdminUsername,
				PasswordHash: hash,
				Email:        "admin@nainaland.com",
			}
			if _, err := users.CreateUser(ctx, admin); err != nil {
				return err
			}
			log.Info("created admin user", "username", cfg.AdminUsername)
		}
	}

	if !cfg.SampleData {
		return nil
	}

	existing, err := props.AllProperties(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, p := range sampleProperties() {
			if _, err := props.CreateProperty(ctx, p); err != nil {
				return err
			}
		}
		log.Info("seeded sample properties", "count", len(sampleProperties()))
	}

	existingPosts, err := posts.AllBlogPosts(ctx)
	if err != nil {
		return err
	}
	if len(existingPosts) == 0 {
		for _, p := range samplePosts() {
			if _, err := posts.CreateBlogPost(ctx, p); err != nil {
				return err
			}
		}
		log.Info("seeded sample blog posts", "count", len(samplePosts()))
	}

	return nil
}

func sampleProperties() []*domain.Property {
	now := time.Now().UTC().Format(time.RFC3339)
	return []*domain.Property{
		{
			Title:        "Premium Land Plot in Highland Park",
			Description:  "Beautiful premium land plot with amazing views. Perfect for building your dream home with ample space for landscaping and outdoor living.",
			Price:        950000,
			Location:     "Highland Park",
			Address:      "123 Luxury Lane, Highland Park, TX 75205",
			Bedrooms:     0,
			Bathrooms:    0,
			Area:         10000,
			AreaUnit:     domain.AreaUnitSqft,
			PropertyType: "Land",
			ForSale:      true,
			Featured:     true,
			Latitude:     32.8310,
			Longitude:    -96.8005,
			ImageURLs: []string{
				"https://images.unsplash.com/photo-1500382017468-9049fed747ef",
				"https://images.unsplash.com/photo-1542856391-010fb87dcfed",
			},
			YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			CreatedAt:  now,
		},
		{
			Title:        "Downtown Development Opportunity",
			Description:  "Rare development opportunity in the heart of downtown. Excellent potential for commercial or mixed-use project with high visibility.",
			Price:        1250000,
			Location:     "Downtown",
			Address:      "456 Urban Ave, Dallas, TX 75201",
			Bedrooms:     0,
			Bathrooms:    0,
			Area:         5,
			AreaUnit:     domain.AreaUnitAcre,
			PropertyType: "Land",
			ForSale:      true,
			Featured:     true,
			Latitude:     32.7767,
			Longitude:    -96.7970,
			ImageURLs: []string{
				"https://images.unsplash.com/photo-1486325212027-8081e485255e",
			},
			CreatedAt: now,
		},
		{
			Title:        "Lakefront Residential Villa",
			Description:  "Spacious villa overlooking the lake with a landscaped garden, modern interiors, and a private dock.",
			Price:        780000,
			Location:     "White Rock Lake",
			Address:      "789 Shoreline Dr, Dallas, TX 75214",
			Bedrooms:     4,
			Bathrooms:    3,
			Area:         3200,
			AreaUnit:     domain.AreaUnitSqft,
			PropertyType: "Villa",
			ForSale:      true,
			Featured:     false,
			Latitude:     32.8343,
			Longitude:    -96.7210,
			ImageURLs: []string{
				"https://images.unsplash.com/photo-1564013799919-ab600027ffc6",
			},
			CreatedAt: now,
		},
	}
}

func samplePosts() []*domain.BlogPost {
	now := time.Now().UTC().Format(time.RFC3339)
	return []*domain.BlogPost{
		{
			Title:    "Top 5 Things to Check Before Buying Land",
			Slug:     "top-5-things-before-buying-land",
			Content:  "Buying land is one of the most consequential investments you can make. Before signing, verify the title history, zoning restrictions, utility access, soil quality, and road frontage. Each of these can make or break a development plan.",
			Summary:  "A practical checklist for first-time land buyers.",
			Author:   "Sarah Johnson",
			Category: "Buying Guide",
			ImageURL:  "https://images.unsplash.com/photo-1500382017468-9049fed747ef",
			CreatedAt: now,
		},
		{
			Title:    "Why Suburban Plots Are Outperforming the Market",
			Slug:     "suburban-plots-outperforming-market",
			Content:  "Suburban land values have grown steadily as remote work reshapes where families want to live. We look at the numbers behind the trend and what it means for investors planning a five-year horizon.",
			Summary:  "Market analysis of suburban land value growth.",
			Author:   "Michael Rodriguez",
			Category: "Market Trends",
			ImageURL:  "https://images.unsplash.com/photo-1486325212027-8081e485255e",
			CreatedAt: now,
		},
	}
}
