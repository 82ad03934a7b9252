// Package tui hosts the home page: one carousel per placement, a status
// line and key help.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/showcase/internal/carousel"
	"github.com/jask/showcase/internal/config"
	"github.com/jask/showcase/internal/database/repository"
	"github.com/jask/showcase/internal/navigate"
	"github.com/jask/showcase/internal/source"
)

// App ties together the carousels on the home page.
type App struct {
	ctx    context.Context
	cfg    config.Config
	source source.Source
	nav    navigate.Navigator
	log    *zap.Logger
	reload <-chan struct{}

	placements []string
	carousels  []*carousel.Model
	focus      int

	keys   keyMap
	help   help.Model
	width  int
	status string
}

// Deps are the collaborators App needs. Reload is optional.
type Deps struct {
	Source    source.Source
	Navigator navigate.Navigator
	Logger    *zap.Logger
	Reload    <-chan struct{}
}

type keyMap struct {
	Focus key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Focus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch carousel")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:        ctx,
		cfg:        cfg,
		source:     deps.Source,
		nav:        deps.Navigator,
		log:        log,
		reload:     deps.Reload,
		placements: []string{repository.PlacementFeatured, repository.PlacementVendors},
		keys:       defaultKeys(),
		help:       help.New(),
	}
	for _, p := range a.placements {
		opts := carouselOptions(cfg.Carousel)
		opts.Title = placementTitle(p)
		opts.ShowButtons = p == repository.PlacementVendors
		opts.Logger = log
		a.carousels = append(a.carousels, carousel.New(opts))
	}
	a.carousels[0].Focus()
	return a
}

func carouselOptions(cc config.CarouselConfig) carousel.Options {
	opts := carousel.DefaultOptions()
	opts.Interval = cc.Interval()
	opts.Transition = cc.Transition()
	opts.Breakpoint = cc.Breakpoint
	opts.WideFraction = cc.WideFraction
	opts.NarrowFraction = cc.NarrowFraction
	if cc.SwipeThreshold > 0 {
		opts.SwipeThreshold = cc.SwipeThreshold
	}
	opts.CellWidthPx = cc.CellWidthPx
	opts.Height = cc.Height
	return opts
}

func placementTitle(p string) string {
	switch p {
	case repository.PlacementFeatured:
		return "Featured"
	case repository.PlacementVendors:
		return "Vendors"
	}
	return p
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadAll(), a.waitReload())
}

func (a *App) loadAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.placements))
	for _, p := range a.placements {
		cmds = append(cmds, a.loadItems(p))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadItems(placement string) tea.Cmd {
	return func() tea.Msg {
		items, err := a.source.Load(a.ctx, placement)
		return itemsMsg{placement: placement, items: items, err: err}
	}
}

// waitReload blocks until the item file changes. It returns nil once the
// watcher is closed, which ends the chain.
func (a *App) waitReload() tea.Cmd {
	if a.reload == nil {
		return nil
	}
	ch := a.reload
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(m, a.keys.Quit):
			a.teardown()
			return a, tea.Quit
		case key.Matches(m, a.keys.Focus):
			a.cycleFocus()
			return a, nil
		}
		return a, a.forward(m)
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		cmd := a.forward(m)
		a.layout()
		return a, cmd
	case itemsMsg:
		c := a.carousel(m.placement)
		if c == nil {
			return a, nil
		}
		if m.err != nil {
			a.log.Warn("load items", zap.String("placement", m.placement), zap.Error(m.err))
			if !errors.Is(m.err, source.ErrNoItems) {
				a.status = fmt.Sprintf("error: %s: %v", m.placement, m.err)
			}
		}
		cmd := c.SetItems(m.items)
		a.layout()
		return a, cmd
	case reloadMsg:
		a.log.Debug("reloading items")
		return a, tea.Batch(a.loadAll(), a.waitReload())
	case carousel.ActivatedMsg:
		return a, a.openCmd(m.Item)
	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.log.Error("navigation failed", zap.Error(m.error))
		a.status = "error: " + m.Error()
		return a, nil
	}
	return a, a.forward(msg)
}

// forward hands msg to every carousel; each one ignores what is not its own.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.carousels))
	for _, c := range a.carousels {
		_, cmd := c.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) openCmd(it carousel.Item) tea.Cmd {
	return func() tea.Msg {
		if a.nav == nil {
			return statusMsg("selected " + it.Label())
		}
		if err := a.nav.Open(a.ctx, it); err != nil {
			if errors.Is(err, navigate.ErrNoLink) {
				return statusMsg("no link for " + it.Label())
			}
			return errMsg{err}
		}
		return statusMsg("opened " + it.Link)
	}
}

func (a *App) cycleFocus() {
	a.carousels[a.focus].Blur()
	for i := 1; i <= len(a.carousels); i++ {
		next := (a.focus + i) % len(a.carousels)
		if a.carousels[next].Engine().Len() > 0 || i == len(a.carousels) {
			a.focus = next
			break
		}
	}
	a.carousels[a.focus].Focus()
}

// layout places the carousels top to bottom below the title row, matching
// View.
func (a *App) layout() {
	row := 1
	for _, c := range a.carousels {
		c.SetOrigin(0, row)
		if h := c.Height(); h > 0 {
			row += h + 1
		}
	}
}

func (a *App) teardown() {
	for _, c := range a.carousels {
		c.Teardown()
	}
	a.log.Debug("home page closed")
}

func (a *App) carousel(placement string) *carousel.Model {
	for i, p := range a.placements {
		if p == placement {
			return a.carousels[i]
		}
	}
	return nil
}

func (a *App) View() string {
	lines := []string{titleStyle.Render("Showcase")}
	empty := true
	for _, c := range a.carousels {
		if v := c.View(); v != "" {
			empty = false
			lines = append(lines, v, "")
		}
	}
	if empty {
		lines = append(lines, mutedStyle.Render("no promotions to show"), "")
	}
	if a.status != "" {
		lines = append(lines, statusStyle.Render(a.status))
	}
	lines = append(lines, a.help.ShortHelpView(a.bindings()))
	return strings.Join(lines, "\n")
}

func (a *App) bindings() []key.Binding {
	kb := []key.Binding{a.keys.Focus}
	kb = append(kb, a.carousels[a.focus].KeyMap().ShortHelp()...)
	return append(kb, a.keys.Quit)
}

type itemsMsg struct {
	placement string
	items     []carousel.Item
	err       error
}

type reloadMsg struct{}

type statusMsg string

type errMsg struct{ error }
