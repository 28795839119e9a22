package grid

import (
	"github.com/mattn/go-runewidth"
)

// WidthPolicy selects how per-column widths are derived from content.
type WidthPolicy int

const (
	// PolicyFixed gives every column the same configured width.
	PolicyFixed WidthPolicy = iota
	// PolicyMax sizes each column to its widest cell, capped.
	PolicyMax
	// PolicyMode sizes each column to its most frequent cell width,
	// falling back to the maximum when the two are close.
	PolicyMode
)

// String returns the policy name used in flags and the status bar.
func (p WidthPolicy) String() string {
	switch p {
	case PolicyFixed:
		return "fixed"
	case PolicyMax:
		return "max"
	case PolicyMode:
		return "mode"
	default:
		return "unknown"
	}
}

// ParseWidthPolicy resolves a policy name from a flag value.
func ParseWidthPolicy(name string) (WidthPolicy, bool) {
	switch name {
	case "fixed":
		return PolicyFixed, true
	case "max":
		return PolicyMax, true
	case "mode":
		return PolicyMode, true
	}
	return PolicyFixed, false
}

// next cycles fixed -> max -> mode -> fixed.
func (p WidthPolicy) next() WidthPolicy {
	switch p {
	case PolicyFixed:
		return PolicyMax
	case PolicyMax:
		return PolicyMode
	default:
		return PolicyFixed
	}
}

// Width heuristics. These are tuned values, not derived ones; the
// literal layout scenarios in the tests pin the behavior that matters.
const (
	minColumnWidth = 3
	maxColumnWidth = 250
	maxColumnGap   = 10

	// minimum cells of a trailing partial column worth drawing,
	// marked with a continuation glyph
	minPartialWidth = 4

	// PolicyMode falls back to the max width when the gap between
	// modal and maximum width is within this fraction of the max
	modeWidthSlack = 0.3
)

// Layout translates (scroll offset, column widths, gap, terminal
// width) into the set of visible columns and their screen offsets.
type Layout struct {
	widths     []int
	gap        int
	policy     WidthPolicy
	fixedWidth int
}

// ColumnSlot describes one visible column: its absolute index, the
// screen x-offset of its left edge, and its clipped width. Truncated
// marks a trailing partial column.
type ColumnSlot struct {
	Col       int
	X         int
	Width     int
	Truncated bool
}

// LayoutOptions configures width derivation.
type LayoutOptions struct {
	Policy     WidthPolicy
	FixedWidth int // used by PolicyFixed
	Gap        int // cells between columns
}

// DefaultLayoutOptions mirror the classic viewer defaults.
var DefaultLayoutOptions = LayoutOptions{
	Policy:     PolicyMode,
	FixedWidth: 20,
	Gap:        2,
}

// NewLayout computes a width table for the given table.
func NewLayout(t *Table, opts LayoutOptions) *Layout {
	if opts.FixedWidth <= 0 {
		opts.FixedWidth = DefaultLayoutOptions.FixedWidth
	}
	if opts.Gap < 0 {
		opts.Gap = DefaultLayoutOptions.Gap
	}
	l := &Layout{
		gap:        opts.Gap,
		policy:     opts.Policy,
		fixedWidth: opts.FixedWidth,
	}
	l.Recalculate(t)
	return l
}

// Recalculate rebuilds the width table from content under the current
// policy. Header cells are measured along with the data so a visible
// header never overflows its column.
func (l *Layout) Recalculate(t *Table) {
	cols := t.Columns()
	l.widths = make([]int, cols)
	if cols == 0 {
		return
	}
	switch l.policy {
	case PolicyFixed:
		for i := range l.widths {
			l.widths[i] = clampWidth(l.fixedWidth)
		}
	case PolicyMax:
		for col := 0; col < cols; col++ {
			l.widths[col] = clampWidth(maxContentWidth(t, col))
		}
	case PolicyMode:
		for col := 0; col < cols; col++ {
			l.widths[col] = clampWidth(modalContentWidth(t, col))
		}
	}
}

func clampWidth(w int) int {
	if w < minColumnWidth {
		return minColumnWidth
	}
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}

func maxContentWidth(t *Table, col int) int {
	m := runewidth.StringWidth(t.HeaderCell(col))
	for y := 0; y < t.RowCount(); y++ {
		if w := runewidth.StringWidth(t.Cell(y, col)); w > m {
			m = w
		}
	}
	return m
}

// modalContentWidth picks the most frequent cell width in the column
// so one outlier cell does not stretch everything. When the modal and
// maximum widths are close the maximum wins, which avoids truncating
// columns whose cells are uniformly long.
func modalContentWidth(t *Table, col int) int {
	counts := make(map[int]int)
	maxw := runewidth.StringWidth(t.HeaderCell(col))
	for y := 0; y < t.RowCount(); y++ {
		w := runewidth.StringWidth(t.Cell(y, col))
		counts[w]++
		if w > maxw {
			maxw = w
		}
	}
	modal, best := 0, 0
	for w, n := range counts {
		if n > best || (n == best && w > modal) {
			modal, best = w, n
		}
	}
	if float64(maxw-modal) <= modeWidthSlack*float64(maxw) {
		return maxw
	}
	return modal
}

// Widths exposes the current per-column width table.
func (l *Layout) Widths() []int {
	return l.widths
}

// Gap returns the configured inter-column gap.
func (l *Layout) Gap() int {
	return l.gap
}

// Policy returns the active width policy.
func (l *Layout) Policy() WidthPolicy {
	return l.policy
}

// FixedWidth returns the configured width for PolicyFixed.
func (l *Layout) FixedWidth() int {
	return l.fixedWidth
}

// CyclePolicy switches to the next width policy and rebuilds widths.
func (l *Layout) CyclePolicy(t *Table) {
	l.policy = l.policy.next()
	l.Recalculate(t)
}

// SetPolicy forces a specific policy and rebuilds widths.
func (l *Layout) SetPolicy(t *Table, p WidthPolicy) {
	l.policy = p
	l.Recalculate(t)
}

// CountForward returns how many columns, starting at winX, fit fully
// within termWidth. At least one column is always reported so the
// cursor has somewhere to live even on absurdly narrow terminals.
func (l *Layout) CountForward(winX, termWidth int) int {
	n, x := 0, 0
	for col := winX; col >= 0 && col < len(l.widths); col++ {
		if x+l.widths[col] > termWidth {
			break
		}
		n++
		x += l.widths[col] + l.gap
	}
	if n < 1 {
		n = 1
	}
	return n
}

// CountBackward returns how many columns fit fully within termWidth
// when walking left from column `from` (inclusive). Used to decide
// how far to step back so `from` becomes the last visible column.
func (l *Layout) CountBackward(from, termWidth int) int {
	n, x := 0, 0
	for col := from; col >= 0 && col < len(l.widths); col-- {
		if x+l.widths[col] > termWidth {
			break
		}
		n++
		x += l.widths[col] + l.gap
	}
	if n < 1 {
		n = 1
	}
	return n
}

// VisibleColumns lays out the columns drawable at scroll offset winX.
// A trailing partial column is included, truncated, when at least
// minPartialWidth cells remain.
func (l *Layout) VisibleColumns(winX, termWidth int) []ColumnSlot {
	var slots []ColumnSlot
	x := 0
	for col := winX; col >= 0 && col < len(l.widths); col++ {
		w := l.widths[col]
		if x+w > termWidth {
			if rem := termWidth - x; rem >= minPartialWidth && len(slots) > 0 {
				slots = append(slots, ColumnSlot{Col: col, X: x, Width: rem, Truncated: true})
			}
			break
		}
		slots = append(slots, ColumnSlot{Col: col, X: x, Width: w})
		x += w + l.gap
	}
	if len(slots) == 0 && winX < len(l.widths) {
		// a single over-wide column still gets the whole line
		w := termWidth
		if w < 1 {
			w = 1
		}
		trunc := l.widths[winX] > termWidth
		slots = append(slots, ColumnSlot{Col: winX, X: 0, Width: w, Truncated: trunc})
	}
	return slots
}

// GrowWidths widens every column by roughly 20%, at least one cell.
func (l *Layout) GrowWidths() {
	for i, w := range l.widths {
		l.widths[i] = clampWidth(w + widthStep(w))
	}
}

// ShrinkWidths narrows every column by roughly 20%, at least one
// cell, never below a single cell of content.
func (l *Layout) ShrinkWidths() {
	for i, w := range l.widths {
		n := w - widthStep(w)
		if n < 1 {
			n = 1
		}
		l.widths[i] = n
	}
}

// GrowColumn widens a single column.
func (l *Layout) GrowColumn(col int) {
	if col < 0 || col >= len(l.widths) {
		return
	}
	l.widths[col] = clampWidth(l.widths[col] + widthStep(l.widths[col]))
}

// ShrinkColumn narrows a single column.
func (l *Layout) ShrinkColumn(col int) {
	if col < 0 || col >= len(l.widths) {
		return
	}
	n := l.widths[col] - widthStep(l.widths[col])
	if n < 1 {
		n = 1
	}
	l.widths[col] = n
}

func widthStep(w int) int {
	step := w / 5
	if step < 1 {
		step = 1
	}
	return step
}

// GrowGap widens the inter-column gap by one cell.
func (l *Layout) GrowGap() {
	if l.gap < maxColumnGap {
		l.gap++
	}
}

// ShrinkGap narrows the inter-column gap by one cell.
func (l *Layout) ShrinkGap() {
	if l.gap > 0 {
		l.gap--
	}
}
