package grid

// Header chrome consumes rows above the grid: a position line, a rule,
// and the header row itself when shown. The offset doubles as the flag
// for header visibility, matching the classic layout math.
const (
	headerOffsetShown  = 3
	headerOffsetHidden = 2
)

// Viewer is the viewport/cursor state machine. It owns the in-window
// cursor (x, y), the scroll offsets (winX, winY), the layout, the
// pending digit modifier, the optional mark, and the cached search
// results. All navigation keeps winY+y and winX+x inside the table
// whenever data is non-empty.
type Viewer struct {
	table  *Table
	layout *Layout

	width  int // terminal columns available to the grid
	height int // terminal rows available, chrome included

	x, y       int
	winX, winY int

	headerOffset int
	mark         *Position
	modifier     string
	results      *SearchResults
}

// Settings is the user-visible state snapshot carried across a
// reload so the rebuilt viewer lands where the old one was.
type Settings struct {
	X, Y       int
	WinX, WinY int
	Policy     WidthPolicy
	FixedWidth int
	Gap        int
	SearchTerm string
}

// Options configures a new Viewer.
type Options struct {
	Layout LayoutOptions
	Width  int
	Height int
}

// DefaultOptions uses the default layout and an 80x24 screen until
// the first resize event arrives.
var DefaultOptions = Options{
	Layout: DefaultLayoutOptions,
	Width:  80,
	Height: 24,
}

// NewViewer builds a viewer over the given table.
func NewViewer(t *Table, opts Options) *Viewer {
	if opts.Width <= 0 {
		opts.Width = DefaultOptions.Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultOptions.Height
	}
	return &Viewer{
		table:        t,
		layout:       NewLayout(t, opts.Layout),
		width:        opts.Width,
		height:       opts.Height,
		headerOffset: headerOffsetShown,
	}
}

// Table exposes the underlying buffer for rendering and tests.
func (v *Viewer) Table() *Table { return v.table }

// Layout exposes the layout engine for rendering.
func (v *Viewer) Layout() *Layout { return v.layout }

// Cursor returns the in-window cursor position.
func (v *Viewer) Cursor() (x, y int) { return v.x, v.y }

// Scroll returns the viewport scroll offsets.
func (v *Viewer) Scroll() (winX, winY int) { return v.winX, v.winY }

// Absolute returns the absolute (row, col) position of the cursor.
func (v *Viewer) Absolute() Position {
	return Position{Y: v.winY + v.y, X: v.winX + v.x}
}

// CurrentCell returns the contents of the cell under the cursor.
func (v *Viewer) CurrentCell() string {
	p := v.Absolute()
	return v.table.Cell(p.Y, p.X)
}

// HeaderOffset reports the chrome rows consumed above the grid.
func (v *Viewer) HeaderOffset() int { return v.headerOffset }

// HeaderVisible reports whether the header row is shown separately.
func (v *Viewer) HeaderVisible() bool { return v.headerOffset == headerOffsetShown }

// Modifier returns the pending digit accumulator, for the status bar.
func (v *Viewer) Modifier() string { return v.modifier }

// Mark returns the saved position, if any.
func (v *Viewer) Mark() (Position, bool) {
	if v.mark == nil {
		return Position{}, false
	}
	return *v.mark, true
}

// visibleRows is the number of data rows that fit on screen.
func (v *Viewer) visibleRows() int {
	n := v.height - v.headerOffset
	if n < 1 {
		n = 1
	}
	return n
}

// visibleCols is the number of fully visible columns at the current
// horizontal scroll offset.
func (v *Viewer) visibleCols() int {
	return v.layout.CountForward(v.winX, v.width)
}

// Size returns the screen area the viewer believes it has.
func (v *Viewer) Size() (w, h int) { return v.width, v.height }

// Resize records new terminal dimensions and reclamps the cursor and
// scroll offsets so the cursor stays on an existing, visible cell.
func (v *Viewer) Resize(w, h int) {
	if w > 0 {
		v.width = w
	}
	if h > 0 {
		v.height = h
	}
	p := v.clampedAbsolute()
	v.GotoRow(p.Y)
	v.GotoCol(p.X)
}

func (v *Viewer) clampedAbsolute() Position {
	p := v.Absolute()
	if last := v.table.RowCount() - 1; p.Y > last {
		p.Y = last
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if last := v.table.Columns() - 1; p.X > last {
		p.X = last
	}
	if p.X < 0 {
		p.X = 0
	}
	return p
}

// GotoRow moves the cursor to an absolute row. A target inside the
// visible band moves only the in-window cursor; a target above
// scrolls it to the first visible row; a target below scrolls it to
// the last.
func (v *Viewer) GotoRow(target int) {
	last := v.table.RowCount() - 1
	if last < 0 {
		v.y, v.winY = 0, 0
		return
	}
	if target < 0 {
		target = 0
	}
	if target > last {
		target = last
	}
	vr := v.visibleRows()
	switch {
	case target >= v.winY && target < v.winY+vr:
		v.y = target - v.winY
	case target < v.winY:
		v.winY = target
		v.y = 0
	default:
		v.winY = target - vr + 1
		v.y = vr - 1
	}
}

// GotoCol moves the cursor to an absolute column with the same
// band semantics as GotoRow. When scrolling right the reverse column
// count decides how far to step so the target becomes the last fully
// visible column.
func (v *Viewer) GotoCol(target int) {
	last := v.table.Columns() - 1
	if last < 0 {
		v.x, v.winX = 0, 0
		return
	}
	if target < 0 {
		target = 0
	}
	if target > last {
		target = last
	}
	v.gotoColUnclamped(target)
}

func (v *Viewer) gotoColUnclamped(target int) {
	vc := v.visibleCols()
	switch {
	case target >= v.winX && target < v.winX+vc:
		v.x = target - v.winX
	case target < v.winX:
		v.winX = target
		v.x = 0
	default:
		back := v.layout.CountBackward(target, v.width)
		v.winX = target - back + 1
		v.x = back - 1
	}
}

// MoveDown moves one row down, scrolling only at the window edge.
func (v *Viewer) MoveDown() {
	if v.winY+v.y >= v.table.RowCount()-1 {
		return
	}
	if v.y < v.visibleRows()-1 {
		v.y++
	} else {
		v.winY++
	}
}

// MoveUp moves one row up, scrolling only at the window edge.
func (v *Viewer) MoveUp() {
	if v.y == 0 {
		if v.winY > 0 {
			v.winY--
		}
		return
	}
	v.y--
}

// MoveLeft moves one column left, scrolling only at the window edge.
func (v *Viewer) MoveLeft() {
	if v.x == 0 {
		if v.winX > 0 {
			v.winX--
		}
		return
	}
	v.x--
}

// MoveRight moves one column right, using the current row's own
// length so jagged rows stop at their own final cell.
func (v *Viewer) MoveRight() {
	yp := v.winY + v.y
	end := v.table.RowLen(yp) - 1
	if end < 0 || v.winX+v.x >= end {
		return
	}
	if v.x < v.visibleCols()-1 {
		v.x++
	} else {
		v.winX++
	}
}

// PageDown scrolls a full screen of rows. Scrolling never passes the
// point where the last row would leave blank trailing space, and once
// on the final page the cursor pins to the true last row.
func (v *Viewer) PageDown() {
	end := v.table.RowCount() - 1
	if end < 0 {
		return
	}
	page := v.visibleRows()
	maxWin := end - page + 1
	if maxWin < 0 {
		maxWin = 0
	}
	if v.winY >= maxWin {
		v.y = end - v.winY
		return
	}
	v.winY += page
	if v.winY > maxWin {
		v.winY = maxWin
	}
	if v.winY+v.y > end {
		v.y = end - v.winY
	}
}

// PageUp scrolls a full screen of rows toward the top.
func (v *Viewer) PageUp() {
	page := v.visibleRows()
	switch {
	case v.winY == 0:
		v.y = 0
	case v.winY < page:
		v.winY = 0
	default:
		v.winY -= page
	}
}

// PageRight scrolls right by a screenful of columns. Scrolling never
// passes the point where the last full column set is anchored to the
// right edge, so the final page absorbs any partial remainder.
func (v *Viewer) PageRight() {
	yp := v.winY + v.y
	end := v.table.RowLen(yp) - 1
	if end < 0 {
		return
	}
	maxWin := end - v.layout.CountBackward(end, v.width) + 1
	if maxWin < 0 {
		maxWin = 0
	}
	if v.winX >= maxWin {
		v.x = end - v.winX
		return
	}
	v.winX += v.visibleCols()
	if v.winX > maxWin {
		v.winX = maxWin
	}
	if v.winX+v.x > end {
		v.x = end - v.winX
	}
	if vc := v.visibleCols(); v.x >= vc {
		v.x = vc - 1
	}
}

// PageLeft scrolls left by the number of columns that fit, computed
// with the reverse column count from just left of the window.
func (v *Viewer) PageLeft() {
	if v.winX == 0 {
		v.x = 0
		return
	}
	back := v.layout.CountBackward(v.winX-1, v.width)
	v.winX -= back
	if v.winX < 0 {
		v.winX = 0
	}
	if vc := v.visibleCols(); v.x >= vc {
		v.x = vc - 1
	}
}

// Top jumps to the first row.
func (v *Viewer) Top() {
	v.y, v.winY = 0, 0
}

// LineHome jumps to the first column of the current row.
func (v *Viewer) LineHome() {
	v.x, v.winX = 0, 0
}

// LineEnd jumps to the last cell of the current row, honoring the
// row's own length.
func (v *Viewer) LineEnd() {
	yp := v.winY + v.y
	end := v.table.RowLen(yp) - 1
	if end < 0 {
		return
	}
	v.gotoColUnclamped(end)
}

// SetMark saves the current absolute position. Each call overwrites
// the previous mark.
func (v *Viewer) SetMark() {
	p := v.Absolute()
	v.mark = &p
}

// GotoMark recalls the saved position, if one exists. The mark is
// clamped, since a reload or sort may have shrunk the table.
func (v *Viewer) GotoMark() {
	if v.mark == nil {
		return
	}
	v.GotoRow(v.mark.Y)
	v.GotoCol(v.mark.X)
}

// ToggleHeader flips header visibility. Hiding merges the header row
// into the data at the top; showing extracts it again. The cursor
// follows the cell it was on.
func (v *Viewer) ToggleHeader() {
	if v.headerOffset == headerOffsetShown {
		v.headerOffset = headerOffsetHidden
		v.table.MergeHeader()
		v.GotoRow(v.Absolute().Y + 1)
		return
	}
	v.headerOffset = headerOffsetShown
	target := v.Absolute().Y - 1
	v.table.ExtractHeader()
	v.GotoRow(target)
}

// Snapshot captures the user-visible settings for a reload.
func (v *Viewer) Snapshot() Settings {
	s := Settings{
		X:          v.x,
		Y:          v.y,
		WinX:       v.winX,
		WinY:       v.winY,
		Policy:     v.layout.Policy(),
		FixedWidth: v.layout.FixedWidth(),
		Gap:        v.layout.Gap(),
	}
	if v.results != nil {
		s.SearchTerm = v.results.Term
	}
	return s
}

// Restore reapplies a settings snapshot to a freshly built viewer,
// clamping everything against the (possibly smaller) new table.
func (v *Viewer) Restore(s Settings) {
	v.layout = NewLayout(v.table, LayoutOptions{
		Policy:     s.Policy,
		FixedWidth: s.FixedWidth,
		Gap:        s.Gap,
	})
	v.winY, v.y = s.WinY, s.Y
	v.winX, v.x = s.WinX, s.X
	p := v.clampedAbsolute()
	v.GotoRow(p.Y)
	v.GotoCol(p.X)
	if s.SearchTerm != "" {
		v.results = findMatches(v.table, s.SearchTerm)
	}
}
