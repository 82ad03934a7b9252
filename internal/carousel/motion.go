package carousel

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultTransition is how long one step of the strip takes to slide.
	// The settle check waits exactly this long.
	DefaultTransition = 500 * time.Millisecond

	frameInterval = time.Second / 30
)

type frameMsg struct {
	ID  int
	tag int
}

// motion interpolates the drawn position toward the logical one.
type motion struct {
	id       int
	tag      int
	duration time.Duration

	from, to, current float64
	elapsed           time.Duration
	running           bool
}

func newMotion(id int, d time.Duration) *motion {
	if d <= 0 {
		d = DefaultTransition
	}
	return &motion{id: id, duration: d}
}

// snap jumps straight to pos and ends any animation.
func (m *motion) snap(pos float64) {
	m.from, m.to, m.current = pos, pos, pos
	m.elapsed = 0
	if m.running {
		m.running = false
		m.tag++
	}
}

// animate slides from the current drawn position to pos.
func (m *motion) animate(pos float64) tea.Cmd {
	m.from, m.to = m.current, pos
	m.elapsed = 0
	if m.running {
		return nil
	}
	m.running = true
	m.tag++
	return m.frame()
}

// shift moves the whole animation by delta without changing what it
// looks like relative to the strip.
func (m *motion) shift(delta float64) {
	m.from += delta
	m.to += delta
	m.current += delta
}

func (m *motion) update(msg frameMsg) tea.Cmd {
	if msg.ID != m.id || msg.tag != m.tag || !m.running {
		return nil
	}
	m.elapsed += frameInterval
	if m.elapsed >= m.duration {
		m.current = m.to
		m.running = false
		return nil
	}
	t := float64(m.elapsed) / float64(m.duration)
	m.current = m.from + (m.to-m.from)*easeOut(t)
	return m.frame()
}

func (m *motion) frame() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{ID: id, tag: tag}
	})
}

func easeOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
