package carousel

import tea "github.com/charmbracelet/bubbletea"

// DefaultSwipeThreshold is the drag distance, in pixels, a gesture must
// exceed to count as a swipe.
const DefaultSwipeThreshold = 50

// Command is the outcome of a finished gesture.
type Command int

const (
	CommandNone Command = iota
	CommandAdvance
	CommandRetreat
	CommandTap
)

func (c Command) String() string {
	switch c {
	case CommandAdvance:
		return "advance"
	case CommandRetreat:
		return "retreat"
	case CommandTap:
		return "tap"
	default:
		return "none"
	}
}

// Pauser is the part of the scheduler a gesture drives.
type Pauser interface {
	Pause()
	Resume() tea.Cmd
}

// Gesture tracks one drag at a time and classifies it on release. Mouse
// drags and touch input both feed it through Start, Move and End.
type Gesture struct {
	threshold int
	pauser    Pauser

	active bool
	startX int
	lastX  int
}

// NewGesture returns a tracker that pauses p for the duration of a drag.
func NewGesture(p Pauser, threshold int) *Gesture {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Gesture{threshold: threshold, pauser: p}
}

// Active reports whether a gesture is in progress.
func (g *Gesture) Active() bool { return g.active }

// Distance is startX - lastX of the current gesture.
func (g *Gesture) Distance() int { return g.startX - g.lastX }

// Start begins a gesture at x and pauses auto-advance.
func (g *Gesture) Start(x int) {
	g.startX, g.lastX = x, x
	g.active = true
	g.pauser.Pause()
}

// Move records the latest x of the gesture.
func (g *Gesture) Move(x int) {
	if !g.active {
		return
	}
	g.lastX = x
}

// End classifies the gesture and resumes auto-advance. A release after
// Leave, or without Start, resumes nothing and returns CommandNone.
func (g *Gesture) End() (Command, tea.Cmd) {
	if !g.active {
		return CommandNone, nil
	}
	d := g.Distance()
	g.active = false
	cmd := g.pauser.Resume()
	switch {
	case d > g.threshold:
		return CommandAdvance, cmd
	case d < -g.threshold:
		return CommandRetreat, cmd
	default:
		return CommandTap, cmd
	}
}

// Leave ends the gesture as if released where it started: no position
// change and no tap, but auto-advance resumes.
func (g *Gesture) Leave() tea.Cmd {
	if !g.active {
		return nil
	}
	g.lastX = g.startX
	g.active = false
	return g.pauser.Resume()
}
