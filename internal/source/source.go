// Package source supplies carousel item lists from the promotions
// database, a YAML file, or built-in static assets.
package source

import (
	"context"
	"errors"

	"github.com/jask/showcase/internal/carousel"
)

// ErrNoItems is returned when a source has nothing to show.
var ErrNoItems = errors.New("source: no items")

// Source loads the ordered item list for one placement.
type Source interface {
	Load(ctx context.Context, placement string) ([]carousel.Item, error)
}

// Static serves a fixed list per placement.
type Static map[string][]carousel.Item

func (s Static) Load(_ context.Context, placement string) ([]carousel.Item, error) {
	items := s[placement]
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return append([]carousel.Item(nil), items...), nil
}

// DefaultAssets is the built-in fallback shown when no other source works.
func DefaultAssets() Static {
	return Static{
		"featured": {
			{ImageRef: "assets/promo/banner-1.png", Title: "List your business free"},
			{ImageRef: "assets/promo/banner-2.png", Title: "Find verified vendors"},
			{ImageRef: "assets/promo/banner-3.png", Title: "Post a requirement"},
		},
		"vendors": {
			{ImageRef: "assets/vendors/placeholder.png", Title: "Your brand here"},
		},
	}
}
