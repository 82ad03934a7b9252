package repository

import "time"

// Placements used by the home page.
const (
	PlacementFeatured = "featured"
	PlacementVendors  = "vendors"
)

// Promotion represents a promotions row.
type Promotion struct {
	ID        string
	Placement string
	ImageRef  string
	Link      *string
	Title     *string
	SortOrder int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PromotionFilters defines list filters.
type PromotionFilters struct {
	Placement  string
	ActiveOnly bool
}
