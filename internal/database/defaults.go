package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/showcase/internal/database/repository"
)

// SeedDefaults ensures a new database has something to show on the home
// page. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewPromotionRepo(db)
	existing, err := repo.List(ctx, repository.PromotionFilters{})
	if err != nil {
		return fmt.Errorf("list promotions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := []struct {
		placement string
		image     string
		title     string
		link      string
	}{
		{repository.PlacementFeatured, "assets/promo/spring-sale.png", "Spring trade sale", "https://example.com/deals/spring"},
		{repository.PlacementFeatured, "assets/promo/post-a-lead.png", "Post a buying lead", "https://example.com/leads/new"},
		{repository.PlacementFeatured, "assets/promo/verified-vendors.png", "Verified vendors", "https://example.com/vendors?verified=1"},
		{repository.PlacementFeatured, "assets/promo/bulk-orders.png", "Bulk order desk", ""},
		{repository.PlacementFeatured, "assets/promo/logistics.png", "Freight partners", "https://example.com/logistics"},
		{repository.PlacementFeatured, "assets/promo/new-listings.png", "New this week", "https://example.com/listings?sort=new"},
		{repository.PlacementVendors, "assets/vendors/acme.png", "Acme Supplies", "https://example.com/vendors/acme"},
		{repository.PlacementVendors, "assets/vendors/northwind.png", "Northwind Traders", "https://example.com/vendors/northwind"},
		{repository.PlacementVendors, "assets/vendors/globex.png", "Globex Industrial", "https://example.com/vendors/globex"},
	}
	for idx, d := range defaults {
		p := repository.Promotion{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte("promo:"+d.placement+":"+d.image)).String(),
			Placement: d.placement,
			ImageRef:  d.image,
			Title:     strPtr(d.title),
			Link:      strPtr(d.link),
			SortOrder: idx,
			Active:    true,
		}
		if err := repo.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
