package carousel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// View renders a header line and the visible window of the strip. An idle
// carousel renders nothing.
func (m *Model) View() string {
	n := m.engine.Len()
	if n == 0 || m.width <= 0 {
		return ""
	}
	rows := m.renderStrip()
	if m.opts.ShowButtons {
		mid := len(rows) / 2
		for i := range rows {
			prev, next := strings.Repeat(" ", buttonWidth), strings.Repeat(" ", buttonWidth)
			if i == mid {
				prev = buttonStyle.Render("‹ ")
				next = buttonStyle.Render(" ›")
			}
			rows[i] = prev + rows[i] + next
		}
	}
	return m.renderHeader() + "\n" + strings.Join(rows, "\n")
}

func (m *Model) renderHeader() string {
	n := m.engine.Len()
	idx, _ := m.engine.DisplayedIndex()
	var dots strings.Builder
	for i := 0; i < n; i++ {
		if i == idx {
			dots.WriteString(activeDotStyle.Render("●"))
		} else {
			dots.WriteString(dotStyle.Render("○"))
		}
	}
	title := m.opts.Title
	if m.focused {
		title = "▸ " + title
	}
	head := fmt.Sprintf("%s  %s  %d/%d", headerStyle.Render(title), dots.String(), idx+1, n)
	return fitWidth(head, m.width)
}

// renderStrip draws only the slots that intersect the window and cuts the
// window out of them. Slots past either end of the tripled sequence wrap,
// so a burst of moves before the next settle still shows items.
func (m *Model) renderStrip() []string {
	width := m.viewport.Width()
	iw := m.viewport.ItemWidth()
	offset := m.viewport.OffsetColumns(m.motion.current)

	first := floorDiv(offset, iw)
	last := floorDiv(offset+width-1, iw)
	rows := make([]string, m.opts.Height)
	active := m.engine.Position()
	indices := RenderIndices(m.engine.Len())
	for slot := first; slot <= last; slot++ {
		it := m.engine.items[indices[mod(slot, len(indices))]]
		card := renderCard(it, iw, m.opts.Height, slot == active)
		for r := range rows {
			rows[r] += card[r]
		}
	}
	start := offset - first*iw
	for r := range rows {
		rows[r] = fitWidth(ansi.TruncateLeft(rows[r], start, ""), width)
	}
	return rows
}

// renderCard returns exactly height lines, each exactly width columns.
func renderCard(it Item, width, height int, active bool) []string {
	blank := strings.Repeat(" ", width)
	out := make([]string, height)
	for i := range out {
		out[i] = blank
	}
	if width < 4 {
		return out
	}
	inner := width - 4 // border and one column of padding each side
	lines := []string{
		titleStyle.Render(ansi.Truncate(it.Label(), inner, "…")),
		imageStyle.Render(ansi.Truncate("▣ "+it.ImageRef, inner, "…")),
	}
	if it.Link != "" {
		lines = append(lines, linkStyle.Render(ansi.Truncate("↗ "+it.Link, inner, "…")))
	}
	style := cardStyle
	if active {
		style = activeCardStyle
	}
	box := style.Width(width-2).Height(height-2).Padding(0, 1).Render(strings.Join(lines, "\n"))
	for i, line := range strings.Split(box, "\n") {
		if i >= height {
			break
		}
		out[i] = fitWidth(line, width)
	}
	return out
}

// fitWidth truncates or pads s to exactly width columns.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
