// Package carousel implements the looping promotional strip.
//
// The strip holds three copies of the item list and keeps its logical
// position inside the middle copy. Moving past either edge of the middle
// copy is corrected after the transition finishes by a silent jump of
// one full list length, so the visible sequence never repeats or skips.
//
// Pieces:
// - Engine: position state machine (no timers, no rendering)
// - Scheduler: auto-advance cadence built on tea.Tick
// - Gesture: drag/click classification with pause and resume
// - Viewport: breakpoint and column math
// - Model: Bubble Tea component wiring the pieces for one instance
package carousel
