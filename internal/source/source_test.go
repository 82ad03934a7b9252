package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/showcase/internal/carousel"
	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/database/repository"
)

const sampleFile = `items:
  - image: assets/a.png
    title: A
    link: https://example.com/a
  - image: assets/b.png
    placement: vendors
  - image: assets/c.png
    inactive: true
  - image: assets/d.png
    placement: featured
`

type stubSource struct {
	items []carousel.Item
	err   error
}

func (s *stubSource) Load(context.Context, string) ([]carousel.Item, error) {
	return s.items, s.err
}

func TestStaticLoad(t *testing.T) {
	s := Static{"featured": {{ImageRef: "x.png"}}}
	got, err := s.Load(context.Background(), "featured")
	require.NoError(t, err)
	require.Equal(t, []carousel.Item{{ImageRef: "x.png"}}, got)

	_, err = s.Load(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNoItems)

	require.NotEmpty(t, DefaultAssets()["featured"])
}

func TestDecodeEntries(t *testing.T) {
	entries, err := DecodeEntries(strings.NewReader(sampleFile))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.Equal(t, "featured", entries[0].Placement)
	require.Equal(t, "vendors", entries[1].Placement)
	require.True(t, entries[2].Inactive)

	_, err = DecodeEntries(strings.NewReader("items:\n  - title: no image\n"))
	require.ErrorContains(t, err, "image required")

	entries, err = DecodeEntries(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestEncodeEntriesReadsBack(t *testing.T) {
	in := []Entry{{Placement: "featured", Image: "a.png", Title: "A"}, {Placement: "vendors", Image: "b.png", Link: "https://b"}}
	var buf bytes.Buffer
	require.NoError(t, EncodeEntries(&buf, in))
	require.Contains(t, buf.String(), "image: a.png")

	out, err := DecodeEntries(&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestFileLoadFiltersPlacementAndInactive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o600))

	got, err := File{Path: path}.Load(context.Background(), "featured")
	require.NoError(t, err)
	require.Equal(t, []carousel.Item{
		{ImageRef: "assets/a.png", Title: "A", Link: "https://example.com/a"},
		{ImageRef: "assets/d.png"},
	}, got)

	_, err = File{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background(), "featured")
	require.Error(t, err)
}

func TestFallback(t *testing.T) {
	ctx := context.Background()
	good := []carousel.Item{{ImageRef: "live.png"}}
	static := Static{"featured": {{ImageRef: "static.png"}}}
	primary := &stubSource{items: good}
	fb := &Fallback{Primary: primary, Static: static}

	got, err := fb.Load(ctx, "featured")
	require.NoError(t, err)
	require.Equal(t, good, got)

	primary.items, primary.err = nil, errors.New("boom")
	got, err = fb.Load(ctx, "featured")
	require.NoError(t, err)
	require.Equal(t, good, got, "last good list wins over static assets")

	primary.err = nil
	got, err = fb.Load(ctx, "featured")
	require.NoError(t, err)
	require.Equal(t, []carousel.Item{{ImageRef: "static.png"}}, got, "empty primary falls back to static")

	primary.err = errors.New("boom")
	got, err = fb.Load(ctx, "vendors")
	require.EqualError(t, err, "boom")
	require.Empty(t, got)

	primary.err = nil
	_, err = fb.Load(ctx, "vendors")
	require.ErrorIs(t, err, ErrNoItems)
}

func TestDBSource(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewPromotionRepo(db)
	link := "https://example.com"
	title := "Deal"
	require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: "2", Placement: "featured", ImageRef: "two.png", SortOrder: 2, Active: true}))
	require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: "1", Placement: "featured", ImageRef: "one.png", Link: &link, Title: &title, SortOrder: 1, Active: true}))
	require.NoError(t, repo.Upsert(ctx, repository.Promotion{ID: "3", Placement: "featured", ImageRef: "off.png", SortOrder: 0, Active: false}))

	got, err := DB{Promotions: repo}.Load(ctx, "featured")
	require.NoError(t, err)
	require.Equal(t, []carousel.Item{
		{ImageRef: "one.png", Link: link, Title: title},
		{ImageRef: "two.png"},
	}, got)
}

func TestWatchSignalsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := Watch(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte(sampleFile+"\n"), 0o600))

	select {
	case _, ok := <-changes:
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no change signal")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
