// Package grid implements the core of the viewer: a normalized table
// buffer, a column layout engine, the viewport/cursor state machine,
// the key dispatcher, and the search and sort engines. It has no
// terminal dependency and is driven entirely through key identities
// and explicit state, so every operation is unit testable.
package grid

// Position is an absolute (row, column) coordinate within a table.
type Position struct {
	Y int
	X int
}

// Table owns the normalized 2D string grid plus the distinguished
// header row. The column count is fixed at construction; only header
// visibility changes the data row count, by exactly one.
type Table struct {
	header []string
	rows   [][]string
	cols   int

	// when false the header has been spliced back into rows and
	// is rendered as ordinary data
	headerSeparate bool
}

// NewTable builds a table from normalized rows (equal length, first
// row is the header). The header is extracted and held separately.
func NewTable(data [][]string) *Table {
	if len(data) == 0 {
		return &Table{headerSeparate: true}
	}
	cols := 0
	for _, row := range data {
		if len(row) > cols {
			cols = len(row)
		}
	}
	// pad defensively; the loader normalizes, but in-memory callers
	// may hand over jagged rows
	padded := make([][]string, len(data))
	for i, row := range data {
		if len(row) == cols {
			padded[i] = row
			continue
		}
		p := make([]string, cols)
		copy(p, row)
		padded[i] = p
	}
	return &Table{
		header:         padded[0],
		rows:           padded[1:],
		cols:           cols,
		headerSeparate: true,
	}
}

// RowCount returns the number of data rows currently in the buffer.
// When the header is merged it counts as a data row.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Columns returns the fixed column count established at construction.
func (t *Table) Columns() int {
	return t.cols
}

// RowLen returns the cell count of a single row. Out-of-range rows
// report zero. Rows are padded so this normally equals Columns, but
// line-end navigation goes through here to stay correct if callers
// constructed the table from jagged data.
func (t *Table) RowLen(y int) int {
	if y < 0 || y >= len(t.rows) {
		return 0
	}
	return len(t.rows[y])
}

// Cell returns the cell at (y, x), or the empty string when the
// coordinate is out of bounds. Render passes read past the edge of
// the data on partially filled screens, so this never fails.
func (t *Table) Cell(y, x int) string {
	if y < 0 || y >= len(t.rows) {
		return ""
	}
	row := t.rows[y]
	if x < 0 || x >= len(row) {
		return ""
	}
	return row[x]
}

// HeaderCell returns the header cell at column x, or "" out of bounds.
func (t *Table) HeaderCell(x int) string {
	if x < 0 || x >= len(t.header) {
		return ""
	}
	return t.header[x]
}

// Header returns the header row.
func (t *Table) Header() []string {
	return t.header
}

// HeaderSeparate reports whether the header is held apart from the
// data (true) or has been merged into it (false).
func (t *Table) HeaderSeparate() bool {
	return t.headerSeparate
}

// MergeHeader splices the header row back into the data at the top.
// No-op if the header is already merged.
func (t *Table) MergeHeader() {
	if !t.headerSeparate || t.header == nil {
		return
	}
	t.rows = append([][]string{t.header}, t.rows...)
	t.headerSeparate = false
}

// ExtractHeader removes the header row from the data and holds it
// separately again. Sorting may have moved it, so the first row with
// matching contents is taken. No-op if already separate.
func (t *Table) ExtractHeader() {
	if t.headerSeparate || t.header == nil {
		return
	}
	idx := 0
	for i, row := range t.rows {
		if rowsEqual(row, t.header) {
			idx = i
			break
		}
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	t.headerSeparate = true
}

func rowsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
