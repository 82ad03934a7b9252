package carousel

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// State is the externally observable phase of a carousel.
type State int

const (
	StateIdle State = iota // no items
	StatePlaying
	StateDragging
	StateSettling
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Options configures one carousel instance.
type Options struct {
	Title          string
	Interval       time.Duration
	Transition     time.Duration
	Breakpoint     int
	WideFraction   float64
	NarrowFraction float64
	SwipeThreshold int // pixels
	CellWidthPx    int // pixels per terminal column, for swipe distances
	Height         int // card rows
	ShowButtons    bool
	KeyMap         KeyMap
	Logger         *zap.Logger
}

// DefaultOptions returns the observed home-page settings.
func DefaultOptions() Options {
	return Options{
		Interval:       DefaultInterval,
		Transition:     DefaultTransition,
		Breakpoint:     DefaultBreakpoint,
		WideFraction:   DefaultWideFraction,
		NarrowFraction: DefaultNarrowFraction,
		SwipeThreshold: DefaultSwipeThreshold,
		CellWidthPx:    8,
		Height:         6,
		KeyMap:         DefaultKeyMap(),
	}
}

// ActivatedMsg is emitted when an item is clicked (not swiped) or opened
// from the keyboard. The host decides what navigation means.
type ActivatedMsg struct {
	ID    int
	Index int
	Item  Item
}

type settleMsg struct {
	ID  int
	gen int
}

type reanimateMsg struct {
	ID  int
	gen int
}

// Model is one carousel instance: engine, scheduler, gesture tracker and
// viewport, driven by the Bubble Tea event loop. All of its timers and
// handlers belong to it alone and are released by Teardown.
type Model struct {
	id        int
	opts      Options
	log       *zap.Logger
	engine    *Engine
	scheduler *Scheduler
	gesture   *Gesture
	viewport  Viewport
	motion    *motion

	gen      int // bumped on every item-list change and teardown
	settling bool
	focused  bool
	width    int
	originX  int
	originY  int
}

// New returns an idle carousel. Call SetItems to start it.
func New(opts Options) *Model {
	def := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.Transition <= 0 {
		opts.Transition = def.Transition
	}
	if opts.CellWidthPx <= 0 {
		opts.CellWidthPx = def.CellWidthPx
	}
	if opts.Height < 3 {
		opts.Height = def.Height
	}
	if len(opts.KeyMap.Next.Keys()) == 0 {
		opts.KeyMap = def.KeyMap
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := nextID()
	m := &Model{
		id:        id,
		opts:      opts,
		engine:    NewEngine(),
		scheduler: NewScheduler(id),
		viewport:  NewViewport(opts.Breakpoint, opts.WideFraction, opts.NarrowFraction),
		motion:    newMotion(id, opts.Transition),
	}
	m.log = log.With(zap.Int("carousel", id), zap.String("title", opts.Title))
	m.gesture = NewGesture(m.scheduler, opts.SwipeThreshold)
	return m
}

func (m *Model) ID() int               { return m.id }
func (m *Model) Title() string         { return m.opts.Title }
func (m *Model) Engine() *Engine       { return m.engine }
func (m *Model) Scheduler() *Scheduler { return m.scheduler }
func (m *Model) Viewport() Viewport    { return m.viewport }
func (m *Model) KeyMap() KeyMap        { return m.opts.KeyMap }
func (m *Model) Focused() bool         { return m.focused }
func (m *Model) Focus()                { m.focused = true }
func (m *Model) Blur()                 { m.focused = false }

// State reports the current phase.
func (m *Model) State() State {
	switch {
	case m.engine.Len() == 0:
		return StateIdle
	case m.gesture.Active():
		return StateDragging
	case m.settling:
		return StateSettling
	default:
		return StatePlaying
	}
}

// DrawnPosition is the position currently drawn, which lags the logical
// position while a slide is animating.
func (m *Model) DrawnPosition() float64 { return m.motion.current }

// SetOrigin tells the carousel where its first row is on screen so mouse
// coordinates can be mapped onto it.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetWidth resizes the carousel to the given number of columns.
func (m *Model) SetWidth(width int) {
	m.width = width
	if m.viewport.Resize(m.stripWidth()) {
		m.log.Debug("breakpoint changed",
			zap.Stringer("breakpoint", m.viewport.Breakpoint()),
			zap.Float64("fraction", m.viewport.Fraction()))
	}
}

// Height is the number of rows View renders.
func (m *Model) Height() int {
	if m.engine.Len() == 0 {
		return 0
	}
	return 1 + m.opts.Height
}

// SetItems installs a new item list. An identical list is ignored; any
// other list fully re-initializes the carousel and restarts auto-advance.
// An empty list leaves the carousel idle with no timer.
func (m *Model) SetItems(items []Item) tea.Cmd {
	if m.engine.Len() > 0 && slices.Equal(items, m.engine.items) {
		return nil
	}
	m.reset()
	m.engine.Initialize(items)
	m.motion.snap(float64(m.engine.Position()))
	if m.engine.Len() == 0 {
		m.log.Debug("carousel idle: no items")
		return nil
	}
	m.log.Debug("carousel initialized", zap.Int("items", m.engine.Len()))
	return m.scheduler.Start(m.opts.Interval)
}

// Teardown releases the scheduler, any gesture and pending settle checks,
// and drops the item list. A later SetItems starts from scratch.
func (m *Model) Teardown() {
	m.reset()
	m.engine.Initialize(nil)
	m.motion.snap(0)
	m.log.Debug("carousel torn down")
}

func (m *Model) reset() {
	m.scheduler.Stop()
	m.gesture.Leave()
	m.motion.snap(m.motion.current)
	m.settling = false
	m.gen++
}

// Advance moves forward one item, as the "next" button does.
func (m *Model) Advance() tea.Cmd {
	if !m.engine.Advance() {
		return nil
	}
	return m.moved()
}

// Retreat moves back one item, as the "previous" button does.
func (m *Model) Retreat() tea.Cmd {
	if !m.engine.Retreat() {
		return nil
	}
	return m.moved()
}

// moved starts the slide to the new position and schedules its settle check.
func (m *Model) moved() tea.Cmd {
	pos := float64(m.engine.Position())
	var slide tea.Cmd
	if m.engine.Transitioning() {
		slide = m.motion.animate(pos)
	} else {
		m.motion.snap(pos)
	}
	id, gen := m.id, m.gen
	settle := tea.Tick(m.opts.Transition, func(time.Time) tea.Msg {
		return settleMsg{ID: id, gen: gen}
	})
	return tea.Batch(slide, settle)
}

// Activate emits an ActivatedMsg for the current item.
func (m *Model) Activate() tea.Cmd {
	idx, ok := m.engine.DisplayedIndex()
	if !ok {
		return nil
	}
	return m.activated(idx, m.engine.items[idx])
}

func (m *Model) activated(idx int, it Item) tea.Cmd {
	m.log.Debug("item activated", zap.Int("index", idx), zap.String("item", it.Label()))
	msg := ActivatedMsg{ID: m.id, Index: idx, Item: it}
	return func() tea.Msg { return msg }
}

func (m *Model) Init() tea.Cmd { return nil }

// Update handles timer, input and resize messages addressed to this
// carousel. Messages for other instances are ignored.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		fired, next := m.scheduler.Update(msg)
		if !fired {
			return m, nil
		}
		return m, tea.Batch(next, m.Advance())
	case settleMsg:
		if msg.ID != m.id || msg.gen != m.gen {
			return m, nil
		}
		return m, m.settle()
	case reanimateMsg:
		if msg.ID != m.id || msg.gen != m.gen {
			return m, nil
		}
		m.engine.Reanimate()
		m.settling = false
	case frameMsg:
		return m, m.motion.update(msg)
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
	case tea.BlurMsg:
		return m, m.gesture.Leave()
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.opts.KeyMap.Prev):
			return m, m.Retreat()
		case key.Matches(msg, m.opts.KeyMap.Next):
			return m, m.Advance()
		case key.Matches(msg, m.opts.KeyMap.Activate):
			return m, m.Activate()
		}
	}
	return m, nil
}

// settle performs the boundary check once the slide has finished. A jump
// disables animation until the next frame.
func (m *Model) settle() tea.Cmd {
	before := m.engine.Position()
	if !m.engine.Settle() {
		return nil
	}
	after := m.engine.Position()
	m.motion.shift(float64(after - before))
	m.settling = true
	m.log.Debug("position settled", zap.Int("from", before), zap.Int("to", after))
	id, gen := m.id, m.gen
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return reanimateMsg{ID: id, gen: gen}
	})
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.engine.Len() == 0 {
		return nil
	}
	inside := m.contains(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return nil
		}
		if m.opts.ShowButtons {
			switch m.col(msg.X) {
			case prevButtonCol:
				return m.Retreat()
			case nextButtonCol:
				return m.Advance()
			}
		}
		m.gesture.Start(m.px(msg.X))
	case tea.MouseActionMotion:
		if !m.gesture.Active() {
			return nil
		}
		if !inside {
			return m.gesture.Leave()
		}
		m.gesture.Move(m.px(msg.X))
	case tea.MouseActionRelease:
		cmd, resume := m.gesture.End()
		switch cmd {
		case CommandAdvance:
			return tea.Batch(resume, m.Advance())
		case CommandRetreat:
			return tea.Batch(resume, m.Retreat())
		case CommandTap:
			return tea.Batch(resume, m.tap(msg.X))
		}
		return resume
	}
	return nil
}

const (
	prevButtonCol = -1
	nextButtonCol = -2
	buttonWidth   = 2
)

// col converts a screen column into a strip column, or one of the button
// markers.
func (m *Model) col(x int) int {
	c := x - m.originX
	if !m.opts.ShowButtons {
		return c
	}
	switch {
	case c < buttonWidth:
		return prevButtonCol
	case c >= m.width-buttonWidth:
		return nextButtonCol
	}
	return c - buttonWidth
}

func (m *Model) px(x int) int {
	return (x - m.originX) * m.opts.CellWidthPx
}

func (m *Model) contains(x, y int) bool {
	top := m.originY + 1 // header row is not part of the strip
	return y >= top && y < top+m.opts.Height && x >= m.originX && x < m.originX+m.width
}

func (m *Model) tap(x int) tea.Cmd {
	c := m.col(x)
	if c < 0 {
		return nil
	}
	slot := m.viewport.SlotAt(c, m.viewport.OffsetColumns(m.motion.current))
	it, ok := m.engine.ItemAt(slot)
	if !ok {
		return nil
	}
	return m.activated(mod(slot, m.engine.Len()), it)
}

func (m *Model) stripWidth() int {
	if m.opts.ShowButtons {
		return max(m.width-2*buttonWidth, 0)
	}
	return m.width
}
