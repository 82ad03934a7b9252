package carousel

// Engine is the position state machine of one carousel instance.
//
// The logical position walks over a virtual sequence of 3N entries. After
// Settle, and whenever the list is non-empty, it lies in [N, 2N).
type Engine struct {
	items         []Item
	pos           int
	transitioning bool
}

// NewEngine returns an empty engine. Advance and Retreat are no-ops until
// Initialize is called with at least one item.
func NewEngine() *Engine {
	return &Engine{transitioning: true}
}

// Initialize replaces the item list and resets the position to the start
// of the middle copy. Nothing from the previous list is carried over.
func (e *Engine) Initialize(items []Item) {
	e.items = append([]Item(nil), items...)
	e.pos = len(e.items)
	e.transitioning = true
}

// Len returns N.
func (e *Engine) Len() int { return len(e.items) }

// Position returns the logical position over the tripled sequence.
func (e *Engine) Position() int { return e.pos }

// Transitioning reports whether the next position change should animate.
func (e *Engine) Transitioning() bool { return e.transitioning }

// Advance moves one item forward. It reports false when there are no items.
func (e *Engine) Advance() bool {
	if len(e.items) == 0 {
		return false
	}
	e.pos++
	return true
}

// Retreat moves one item backward. It reports false when there are no items.
func (e *Engine) Retreat() bool {
	if len(e.items) == 0 {
		return false
	}
	e.pos--
	return true
}

// Settle moves the position back into the middle copy when it has left it,
// disabling animation for the jump. It reports whether a jump happened and
// is safe to call any number of times.
func (e *Engine) Settle() bool {
	n := len(e.items)
	if n == 0 || (e.pos >= n && e.pos < 2*n) {
		return false
	}
	e.transitioning = false
	e.pos = n + mod(e.pos, n)
	return true
}

// Reanimate re-enables animation after a settle jump.
func (e *Engine) Reanimate() { e.transitioning = true }

// DisplayedIndex returns the index of the active item in the real list.
// ok is false when the list is empty.
func (e *Engine) DisplayedIndex() (idx int, ok bool) {
	if len(e.items) == 0 {
		return 0, false
	}
	return mod(e.pos, len(e.items)), true
}

// Current returns the active item.
func (e *Engine) Current() (Item, bool) {
	idx, ok := e.DisplayedIndex()
	if !ok {
		return Item{}, false
	}
	return e.items[idx], true
}

// ItemAt maps a virtual strip slot to its item.
func (e *Engine) ItemAt(slot int) (Item, bool) {
	if len(e.items) == 0 {
		return Item{}, false
	}
	return e.items[mod(slot, len(e.items))], true
}

// RenderIndices returns the tripled index sequence 0..n-1, 0..n-1, 0..n-1
// used to lay out the strip.
func RenderIndices(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, 3*n)
	for c := 0; c < 3; c++ {
		for i := 0; i < n; i++ {
			out = append(out, i)
		}
	}
	return out
}

// mod is the Euclidean remainder; the result is always in [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
