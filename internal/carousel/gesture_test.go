package carousel

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type fakePauser struct {
	paused  int
	resumed int
}

func (f *fakePauser) Pause() { f.paused++ }

func (f *fakePauser) Resume() tea.Cmd {
	f.resumed++
	return nil
}

func TestGestureSwipeThreshold(t *testing.T) {
	tests := []struct {
		name  string
		start int
		move  int
		want  Command
	}{
		{name: "swipe left advances", start: 100, move: 40, want: CommandAdvance},
		{name: "short drag is a tap", start: 100, move: 70, want: CommandTap},
		{name: "exactly threshold is a tap", start: 100, move: 50, want: CommandTap},
		{name: "swipe right retreats", start: 40, move: 100, want: CommandRetreat},
		{name: "no movement is a tap", start: 10, move: 10, want: CommandTap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePauser{}
			g := NewGesture(p, DefaultSwipeThreshold)
			g.Start(tt.start)
			g.Move(tt.move)
			got, _ := g.End()
			require.Equal(t, tt.want, got)
			require.Equal(t, 1, p.paused)
			require.Equal(t, 1, p.resumed)
			require.False(t, g.Active())
		})
	}
}

func TestGestureStartPausesImmediately(t *testing.T) {
	p := &fakePauser{}
	g := NewGesture(p, 0)
	g.Start(5)
	require.True(t, g.Active())
	require.Equal(t, 1, p.paused)
	require.Equal(t, 0, p.resumed)
}

func TestGestureLeaveResumesWithoutCommand(t *testing.T) {
	p := &fakePauser{}
	g := NewGesture(p, DefaultSwipeThreshold)
	g.Start(200)
	g.Move(0)
	g.Leave()
	require.False(t, g.Active())
	require.Equal(t, 1, p.resumed)

	got, _ := g.End()
	require.Equal(t, CommandNone, got)
	require.Equal(t, 1, p.resumed, "release after leave must not resume twice")
}

func TestGestureMoveWithoutStartIgnored(t *testing.T) {
	p := &fakePauser{}
	g := NewGesture(p, DefaultSwipeThreshold)
	g.Move(300)
	got, _ := g.End()
	require.Equal(t, CommandNone, got)
	require.Equal(t, 0, p.paused)
	require.Equal(t, 0, p.resumed)
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "advance", CommandAdvance.String())
	require.Equal(t, "retreat", CommandRetreat.String())
	require.Equal(t, "tap", CommandTap.String())
	require.Equal(t, "none", CommandNone.String())
}
