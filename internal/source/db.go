package source

import (
	"context"
	"fmt"

	"github.com/jask/showcase/internal/carousel"
	"github.com/jask/showcase/internal/database/repository"
)

// DB serves active promotions in sort order.
type DB struct {
	Promotions *repository.PromotionRepo
}

func (s DB) Load(ctx context.Context, placement string) ([]carousel.Item, error) {
	rows, err := s.Promotions.List(ctx, repository.PromotionFilters{Placement: placement, ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	out := make([]carousel.Item, 0, len(rows))
	for _, p := range rows {
		out = append(out, ItemFromPromotion(p))
	}
	return out, nil
}

// ItemFromPromotion converts a row into a carousel item.
func ItemFromPromotion(p repository.Promotion) carousel.Item {
	it := carousel.Item{ImageRef: p.ImageRef}
	if p.Link != nil {
		it.Link = *p.Link
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	return it
}
