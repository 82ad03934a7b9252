package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the auto-advance cadence.
const DefaultInterval = 1600 * time.Millisecond

// TickMsg is delivered when an auto-advance interval elapses.
type TickMsg struct {
	ID  int
	tag int
}

// Scheduler owns the auto-advance cadence of one carousel.
//
// Every Start, Pause, Resume and Stop bumps the tag, so a tick that was
// already in flight for an older cadence is dropped when it arrives. At
// most one cadence is live at a time.
type Scheduler struct {
	id       int
	tag      int
	interval time.Duration
	running  bool
	paused   bool
}

// NewScheduler returns a stopped scheduler bound to the carousel id.
func NewScheduler(id int) *Scheduler {
	return &Scheduler{id: id, interval: DefaultInterval}
}

// Start begins a fresh cadence of the given interval.
func (s *Scheduler) Start(interval time.Duration) tea.Cmd {
	if interval > 0 {
		s.interval = interval
	}
	s.running = true
	s.paused = false
	s.tag++
	return s.tick()
}

// Pause tears the current cadence down. Ticks already scheduled are ignored.
func (s *Scheduler) Pause() {
	if !s.running {
		return
	}
	s.paused = true
	s.tag++
}

// Resume starts a new full interval after Pause. It does nothing when the
// scheduler is stopped or not paused.
func (s *Scheduler) Resume() tea.Cmd {
	if !s.running || !s.paused {
		return nil
	}
	s.paused = false
	s.tag++
	return s.tick()
}

// Stop tears the cadence down until the next Start.
func (s *Scheduler) Stop() {
	s.running = false
	s.paused = false
	s.tag++
}

// Running reports whether the scheduler has been started and not stopped.
func (s *Scheduler) Running() bool { return s.running }

// Paused reports whether the cadence is suspended by a gesture.
func (s *Scheduler) Paused() bool { return s.paused }

// Interval returns the configured cadence.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Update handles a tick. fired reports whether the carousel should advance;
// next schedules the following tick of the same cadence.
func (s *Scheduler) Update(msg TickMsg) (fired bool, next tea.Cmd) {
	if msg.ID != s.id || msg.tag != s.tag || !s.running || s.paused {
		return false, nil
	}
	return true, s.tick()
}

func (s *Scheduler) tick() tea.Cmd {
	id, tag := s.id, s.tag
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}
