package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/database/repository"
)

func openTestDB(t *testing.T) *repository.PromotionRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewPromotionRepo(db)
}

func str(s string) *string { return &s }

func TestPromotionRepoRoundTrip(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := openTestDB(t)

	require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: "b", Placement: "featured", ImageRef: "b.png", SortOrder: 2, Active: true}))
	require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: "a", Placement: "featured", ImageRef: "a.png", Title: str("A"), Link: str("https://a"), SortOrder: 1, Active: true}))
	require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: "c", Placement: "vendors", ImageRef: "c.png", Active: false}))

	all, err := repo.List(ctx, repository.PromotionFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	featured, err := repo.List(ctx, repository.PromotionFilters{Placement: "featured", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 2)
	require.Equal(t, "a", featured[0].ID)
	require.Equal(t, "A", *featured[0].Title)
	require.Equal(t, "https://a", *featured[0].Link)
	require.Nil(t, featured[1].Title)
	require.Nil(t, featured[1].Link)

	vendors, err := repo.List(ctx, repository.PromotionFilters{Placement: "vendors", ActiveOnly: true})
	require.NoError(t, err)
	require.Empty(t, vendors)

	require.NoError(t, repo.SetActive(ctx, "c", true))
	got, err := repo.Get(ctx, "c")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, got.Active)

	next, err := repo.NextSortOrder(ctx, "featured")
	require.NoError(t, err)
	require.Equal(t, 3, next)
	next, err = repo.NextSortOrder(ctx, "empty")
	require.NoError(t, err)
	require.Equal(t, 0, next)
}

func TestPromotionRepoDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := openTestDB(t)

	require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: "a", Placement: "featured", ImageRef: "a.png", Active: true}))
	ok, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Delete(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPromotionRepoReorder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := openTestDB(t)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: id, Placement: "featured", ImageRef: id + ".png", SortOrder: i, Active: true}))
	}
	require.NoError(t, repo.Reorder(ctx, []string{"c", "a", "b"}))

	list, err := repo.List(ctx, repository.PromotionFilters{Placement: "featured"})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, []string{list[0].ID, list[1].ID, list[2].ID})

	err = repo.Reorder(ctx, []string{"missing"})
	require.True(t, errors.Is(err, repository.ErrNotFound))
	require.ErrorIs(t, repo.SetActive(ctx, "missing", false), repository.ErrNotFound)
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.SeedDefaults(ctx, db))
	require.NoError(t, database.SeedDefaults(ctx, db))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM promotions").Scan(&count))
	require.Equal(t, 9, count)
}
