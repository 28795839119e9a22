package grid

import "strings"

// SearchResults caches the hits of the most recent search as absolute
// positions in row-major order, plus the index currently selected.
type SearchResults struct {
	Term string
	Hits []Position
	idx  int
}

// Count returns the number of cached hits.
func (r *SearchResults) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Hits)
}

// Index returns the 0-based index of the selected hit.
func (r *SearchResults) Index() int {
	if r == nil {
		return 0
	}
	return r.idx
}

// findMatches scans the whole table in row-major order for cells
// whose lowercased content contains the lowercased needle.
func findMatches(t *Table, term string) *SearchResults {
	needle := strings.ToLower(term)
	res := &SearchResults{Term: term}
	if needle == "" {
		return res
	}
	for y := 0; y < t.RowCount(); y++ {
		for x := 0; x < t.Columns(); x++ {
			if strings.Contains(strings.ToLower(t.Cell(y, x)), needle) {
				res.Hits = append(res.Hits, Position{Y: y, X: x})
			}
		}
	}
	return res
}

// scanFrom finds the nearest match relative to an absolute cursor
// position, scanning in row-major order and wrapping around exactly
// once: rest of the current row, rows below, rows above from the top,
// then the start of the current row back to the cursor. The cursor
// cell itself is only reported when no other cell matches. Reverse
// runs the identical scan over the reflected table and un-reflects
// the hit.
func scanFrom(t *Table, term string, from Position, reverse bool) (Position, bool) {
	needle := strings.ToLower(term)
	if needle == "" || t.RowCount() == 0 || t.Columns() == 0 {
		return Position{}, false
	}
	rows, cols := t.RowCount(), t.Columns()

	cell := t.Cell
	start := from
	if reverse {
		cell = func(y, x int) string {
			return t.Cell(rows-1-y, cols-1-x)
		}
		start = Position{Y: rows - 1 - from.Y, X: cols - 1 - from.X}
	}

	total := rows * cols
	begin := start.Y*cols + start.X
	for step := 1; step <= total; step++ {
		i := (begin + step) % total
		y, x := i/cols, i%cols
		if strings.Contains(strings.ToLower(cell(y, x)), needle) {
			if reverse {
				return Position{Y: rows - 1 - y, X: cols - 1 - x}, true
			}
			return Position{Y: y, X: x}, true
		}
	}
	return Position{}, false
}

// RunSearch recomputes the full result list for term and moves the
// cursor to the first hit after the current position, wrapping. A
// term found nowhere leaves the cursor where it is.
func (v *Viewer) RunSearch(term string) {
	v.results = findMatches(v.table, term)
	if len(v.results.Hits) == 0 {
		return
	}
	pos, ok := scanFrom(v.table, term, v.Absolute(), false)
	if !ok {
		return
	}
	for i, hit := range v.results.Hits {
		if hit == pos {
			v.results.idx = i
			break
		}
	}
	v.gotoResult()
}

// NextResult advances through the cached hits with wraparound.
func (v *Viewer) NextResult() {
	if v.results.Count() == 0 {
		return
	}
	v.results.idx = (v.results.idx + 1) % len(v.results.Hits)
	v.gotoResult()
}

// PrevResult retreats through the cached hits with wraparound.
func (v *Viewer) PrevResult() {
	if v.results.Count() == 0 {
		return
	}
	v.results.idx--
	if v.results.idx < 0 {
		v.results.idx = len(v.results.Hits) - 1
	}
	v.gotoResult()
}

// Results exposes the cached search state for the status bar.
func (v *Viewer) Results() *SearchResults {
	return v.results
}

func (v *Viewer) gotoResult() {
	hit := v.results.Hits[v.results.idx]
	v.GotoRow(hit.Y)
	v.GotoCol(hit.X)
}
