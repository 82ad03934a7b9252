package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/showcase/internal/carousel"
	"github.com/jask/showcase/internal/config"
	"github.com/jask/showcase/internal/navigate"
	"github.com/jask/showcase/internal/source"
)

func testConfig() config.Config {
	return config.Config{Carousel: config.CarouselConfig{
		IntervalMS:     1600,
		TransitionMS:   500,
		Breakpoint:     100,
		WideFraction:   0.2,
		NarrowFraction: 0.8,
		SwipeThreshold: 50,
		CellWidthPx:    8,
		Height:         6,
	}}
}

func testItems() source.Static {
	return source.Static{
		"featured": {
			{ImageRef: "a.png", Link: "https://a", Title: "A"},
			{ImageRef: "b.png", Title: "B"},
			{ImageRef: "c.png", Link: "https://c", Title: "C"},
		},
		"vendors": {
			{ImageRef: "v1.png", Link: "https://v1", Title: "V1"},
			{ImageRef: "v2.png", Title: "V2"},
		},
	}
}

func newTestApp(t *testing.T, src source.Source, reload <-chan struct{}) (*App, *navigate.Recorder) {
	t.Helper()
	rec := &navigate.Recorder{}
	a := New(context.Background(), testConfig(), Deps{Source: src, Navigator: rec, Reload: reload})
	t.Cleanup(a.teardown)
	return a, rec
}

// load runs the item loads synchronously.
func load(t *testing.T, a *App) {
	t.Helper()
	for _, p := range a.placements {
		msg := a.loadItems(p)()
		a.Update(msg)
	}
}

func TestItemsPopulateCarousels(t *testing.T) {
	a, _ := newTestApp(t, testItems(), nil)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	load(t, a)

	require.Equal(t, 3, a.carousels[0].Engine().Len())
	require.Equal(t, 2, a.carousels[1].Engine().Len())
	require.True(t, a.carousels[0].Scheduler().Running())
	require.True(t, a.carousels[1].Scheduler().Running())

	view := a.View()
	require.Contains(t, view, "Featured")
	require.Contains(t, view, "Vendors")
}

func TestActivateOpensThroughNavigator(t *testing.T) {
	a, rec := newTestApp(t, testItems(), nil)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	load(t, a)

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, a.carousels[1].Focused())
	require.False(t, a.carousels[0].Focused())

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	activated, ok := msg.(tea.BatchMsg)
	if ok {
		for _, c := range activated {
			if c == nil {
				continue
			}
			if m, ok := c().(carousel.ActivatedMsg); ok {
				msg = m
			}
		}
	}
	act, ok := msg.(carousel.ActivatedMsg)
	require.True(t, ok)
	require.Equal(t, "V1", act.Item.Title)

	_, cmd = a.Update(act)
	a.Update(cmd())
	require.Equal(t, "opened https://v1", a.status)
	require.Len(t, rec.Opened(), 1)
}

func TestActivateWithoutLinkSetsStatus(t *testing.T) {
	a, rec := newTestApp(t, testItems(), nil)
	_, cmd := a.Update(carousel.ActivatedMsg{Item: carousel.Item{ImageRef: "b.png", Title: "B"}})
	a.Update(cmd())
	require.Equal(t, "no link for B", a.status)
	require.Empty(t, rec.Opened())
}

type failingSource struct{ err error }

func (s failingSource) Load(context.Context, string) ([]carousel.Item, error) { return nil, s.err }

func TestLoadErrorLeavesCarouselIdle(t *testing.T) {
	a, _ := newTestApp(t, failingSource{err: errors.New("db locked")}, nil)
	load(t, a)
	require.Contains(t, a.status, "db locked")
	require.Equal(t, carousel.StateIdle, a.carousels[0].State())
	require.False(t, a.carousels[0].Scheduler().Running())
	require.Contains(t, a.View(), "no promotions to show")
}

func TestReloadChain(t *testing.T) {
	ch := make(chan struct{}, 1)
	a, _ := newTestApp(t, testItems(), ch)
	ch <- struct{}{}
	require.Equal(t, reloadMsg{}, a.waitReload()())
	close(ch)
	require.Nil(t, a.waitReload()())

	noWatch, _ := newTestApp(t, testItems(), nil)
	require.Nil(t, noWatch.waitReload())
}

func TestQuitTearsDownCarousels(t *testing.T) {
	a, _ := newTestApp(t, testItems(), nil)
	load(t, a)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	for _, c := range a.carousels {
		require.Equal(t, carousel.StateIdle, c.State())
		require.False(t, c.Scheduler().Running())
	}
}

func TestFocusSkipsEmptyCarousel(t *testing.T) {
	src := source.Static{"featured": testItems()["featured"]}
	a, _ := newTestApp(t, src, nil)
	load(t, a)
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, a.carousels[0].Focused())
}
