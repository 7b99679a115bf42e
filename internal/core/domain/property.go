// Package domain defines the core domain models for the estate service.
package domain

import "strings"

// Area units accepted for property listings.
const (
	AreaUnitSqft  = "sqft"
	AreaUnitGunta = "gunta"
	AreaUnitAcre  = "acre"
)

// Property represents a property listing in the public catalog.
type Property struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Location    string  `json:"location"`
	Address     string  `json:"address"`

	// Bedrooms and Bathrooms default to 0; land listings keep the zero
	// value rather than omitting the fields.
	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`

	// Area is the plot size in AreaUnit units.
	Area     int64  `json:"area"`
	AreaUnit string `json:"areaUnit"`

	PropertyType string  `json:"propertyType"`
	ForSale      bool    `json:"forSale"`
	Featured     bool    `json:"featured"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`

	ImageURLs  []string `json:"imageUrls"`
	YoutubeURL string   `json:"youtubeUrl"`

	// CreatedAt is an RFC 3339 timestamp assigned at creation.
	CreatedAt string `json:"createdAt"`
}

// ApplyDefaults fills optional fields the way the insert schema does.
func (p *Property) ApplyDefaults() {
	if p.AreaUnit == "" {
		p.AreaUnit = AreaUnitSqft
	}
}

// Validate validates the listing fields, returning every violation at
// once so the client can fix the whole form in one pass.
func (p *Property) Validate() error {
	var violations []string

	if strings.TrimSpace(p.Title) == "" {
		violations = append(violations, "title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		violations = append(violations, "description is required")
	}
	if p.Price <= 0 {
		violations = append(violations, "price must be positive")
	}
	if strings.TrimSpace(p.Location) == "" {
		violations = append(violations, "location is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		violations = append(violations, "address is required")
	}
	if p.Bedrooms < 0 {
		violations = append(violations, "bedrooms must not be negative")
	}
	if p.Bathrooms < 0 {
		violations = append(violations, "bathrooms must not be negative")
	}
	if p.Area <= 0 {
		violations = append(violations, "area must be positive")
	}
	switch p.AreaUnit {
	case AreaUnitSqft, AreaUnitGunta, AreaUnitAcre:
	default:
		violations = append(violations, "areaUnit must be one of sqft, gunta, acre")
	}
	if strings.TrimSpace(p.PropertyType) == "" {
		violations = append(violations, "propertyType is required")
	}
	if len(p.ImageURLs) == 0 {
		violations = append(violations, "at least one image URL is required")
	}

	if len(violations) > 0 {
		return ErrValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// MatchesQuery reports whether the listing matches a free-text search
// query. Matching is case-insensitive over the descriptive fields.
func (p *Property) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{p.Title, p.Description, p.Location, p.Address, p.PropertyType} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the property.
func (p *Property) Clone() *Property {
	clone := *p
	if p.ImageURLs != nil {
		clone.ImageURLs = append([]string(nil), p.ImageURLs...)
	}
	return &clone
}
