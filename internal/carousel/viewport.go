package carousel

import "math"

// Breakpoint classifies the host width.
type Breakpoint int

const (
	Narrow Breakpoint = iota
	Wide
)

func (b Breakpoint) String() string {
	if b == Wide {
		return "wide"
	}
	return "narrow"
}

const (
	DefaultBreakpoint     = 100
	DefaultWideFraction   = 0.20
	DefaultNarrowFraction = 0.80
)

// Viewport derives item geometry from the host width. It never changes the
// carousel position.
type Viewport struct {
	threshold      int
	wideFraction   float64
	narrowFraction float64

	width      int
	breakpoint Breakpoint
}

// NewViewport returns a viewport that is Wide at widths of at least
// threshold columns. Zero arguments fall back to the defaults.
func NewViewport(threshold int, wide, narrow float64) Viewport {
	if threshold <= 0 {
		threshold = DefaultBreakpoint
	}
	if wide <= 0 || wide > 1 {
		wide = DefaultWideFraction
	}
	if narrow <= 0 || narrow > 1 {
		narrow = DefaultNarrowFraction
	}
	return Viewport{threshold: threshold, wideFraction: wide, narrowFraction: narrow}
}

// Resize records a new width and reports whether the breakpoint changed.
func (v *Viewport) Resize(width int) bool {
	if width < 0 {
		width = 0
	}
	v.width = width
	bp := Narrow
	if width >= v.threshold {
		bp = Wide
	}
	changed := bp != v.breakpoint
	v.breakpoint = bp
	return changed
}

func (v Viewport) Width() int             { return v.width }
func (v Viewport) Breakpoint() Breakpoint { return v.breakpoint }

// Fraction is the share of the width one item occupies.
func (v Viewport) Fraction() float64 {
	if v.breakpoint == Wide {
		return v.wideFraction
	}
	return v.narrowFraction
}

// ItemWidth is the column width of one item, at least 1.
func (v Viewport) ItemWidth() int {
	w := int(math.Round(float64(v.width) * v.Fraction()))
	if w < 1 {
		return 1
	}
	return w
}

// OffsetColumns is the leftmost strip column shown for a (possibly
// fractional, mid-animation) logical position.
func (v Viewport) OffsetColumns(pos float64) int {
	return int(math.Round(pos * float64(v.ItemWidth())))
}

// SlotAt maps a column inside the viewport to the virtual strip slot under
// it, given the current strip offset in columns.
func (v Viewport) SlotAt(col, offset int) int {
	return int(math.Floor(float64(offset+col) / float64(v.ItemWidth())))
}

// TranslatePercent is the CSS-style translate of the strip for a position:
// -pos * fraction * 100.
func TranslatePercent(pos int, fraction float64) float64 {
	return -float64(pos) * fraction * 100
}
