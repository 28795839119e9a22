package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestViewer builds a viewer over rows x cols of generated data
// with fixed 10-cell columns and gap 2, on a w x h screen.
func newTestViewer(rows, cols, w, h int) *Viewer {
	tab := NewTable(testData(rows, cols))
	return NewViewer(tab, Options{
		Layout: LayoutOptions{Policy: PolicyFixed, FixedWidth: 10, Gap: 2},
		Width:  w,
		Height: h,
	})
}

// checkInvariants asserts the cursor never points outside the table.
func checkInvariants(t *testing.T, v *Viewer) {
	t.Helper()
	p := v.Absolute()
	if v.table.RowCount() > 0 {
		require.GreaterOrEqual(t, p.Y, 0)
		require.Less(t, p.Y, v.table.RowCount())
	}
	if v.table.Columns() > 0 {
		require.GreaterOrEqual(t, p.X, 0)
		require.Less(t, p.X, v.table.Columns())
	}
	require.GreaterOrEqual(t, v.winX, 0)
	require.GreaterOrEqual(t, v.winY, 0)
}

func TestGotoRow_BandSemantics(t *testing.T) {
	v := newTestViewer(100, 3, 80, 13) // 10 visible rows

	// below the band: target becomes the last visible row
	v.GotoRow(50)
	assert.Equal(t, Position{Y: 50, X: 0}, v.Absolute())
	assert.Equal(t, 41, v.winY)
	assert.Equal(t, 9, v.y)

	// inside the band: only the in-window cursor moves
	v.GotoRow(45)
	assert.Equal(t, 41, v.winY, "scroll untouched for in-band target")
	assert.Equal(t, 4, v.y)

	// above the band: target becomes the first visible row
	v.GotoRow(10)
	assert.Equal(t, 10, v.winY)
	assert.Equal(t, 0, v.y)
}

func TestGotoRow_Idempotent(t *testing.T) {
	v := newTestViewer(100, 3, 80, 13)

	for _, n := range []int{1, 37, 100} {
		v.GotoRow(n - 1)
		first := v.Absolute()
		v.GotoRow(n - 1)
		assert.Equal(t, first, v.Absolute(), "second goto_y(%d) moved the cursor", n)
		assert.Equal(t, n-1, first.Y)
	}
}

func TestGotoRow_Clamps(t *testing.T) {
	v := newTestViewer(10, 3, 80, 24)
	v.GotoRow(9999)
	assert.Equal(t, 9, v.Absolute().Y)
	v.GotoRow(-5)
	assert.Equal(t, 0, v.Absolute().Y)
}

func TestGotoCol_AnchorsRightEdge(t *testing.T) {
	v := newTestViewer(5, 10, 25, 24) // 2 fully visible columns

	v.GotoCol(5)
	assert.Equal(t, 5, v.Absolute().X)
	assert.Equal(t, 4, v.winX, "target anchored as last fully visible column")

	// moving back inside the band keeps the scroll
	v.GotoCol(4)
	assert.Equal(t, 4, v.winX)

	v.GotoCol(0)
	assert.Equal(t, 0, v.winX)
	assert.Equal(t, 0, v.x)
}

func TestSingleStep_ScrollsOnlyAtEdges(t *testing.T) {
	v := newTestViewer(30, 3, 80, 13) // 10 visible rows

	for i := 0; i < 9; i++ {
		v.MoveDown()
	}
	assert.Equal(t, 0, v.winY, "no scroll while cursor inside the window")
	assert.Equal(t, 9, v.y)

	v.MoveDown()
	assert.Equal(t, 1, v.winY, "scrolls once cursor is at the edge")
	assert.Equal(t, 9, v.y)

	v.MoveUp()
	assert.Equal(t, 1, v.winY)
	assert.Equal(t, 8, v.y)
}

func TestMove_ClampsAtTableEdges(t *testing.T) {
	v := newTestViewer(2, 2, 80, 24)

	v.MoveUp()
	v.MoveLeft()
	assert.Equal(t, Position{}, v.Absolute())

	for i := 0; i < 10; i++ {
		v.MoveDown()
		v.MoveRight()
	}
	assert.Equal(t, Position{Y: 1, X: 1}, v.Absolute())
	checkInvariants(t, v)
}

func TestPageDown_PinsAtLastRow(t *testing.T) {
	v := newTestViewer(10, 3, 80, 7) // 4 visible rows

	// ceil(10/4) = 3 pages to the bottom
	for i := 0; i < 3; i++ {
		v.PageDown()
		checkInvariants(t, v)
	}
	assert.Equal(t, 9, v.Absolute().Y)

	// further paging is a no-op
	before := v.Absolute()
	winY := v.winY
	v.PageDown()
	assert.Equal(t, before, v.Absolute())
	assert.Equal(t, winY, v.winY)
}

func TestPageDown_NeverOverscrolls(t *testing.T) {
	v := newTestViewer(10, 3, 80, 7) // 4 visible rows
	for i := 0; i < 5; i++ {
		v.PageDown()
	}
	// last page keeps the window full of data: rows 6..9 visible
	assert.Equal(t, 6, v.winY)
}

func TestPageUp_ReturnsToTop(t *testing.T) {
	v := newTestViewer(20, 3, 80, 7)
	v.GotoRow(19)

	for i := 0; i < 10; i++ {
		v.PageUp()
		checkInvariants(t, v)
	}
	assert.Equal(t, 0, v.winY)
	assert.Equal(t, 0, v.y)
}

func TestPageRight_AnchorsLastColumnSet(t *testing.T) {
	v := newTestViewer(5, 10, 25, 24) // 2 fully visible columns

	for i := 0; i < 10; i++ {
		v.PageRight()
		checkInvariants(t, v)
	}
	assert.Equal(t, 9, v.Absolute().X, "cursor pinned at the final column")
	assert.Equal(t, 8, v.winX, "last full column set anchored at the right edge")
}

func TestPageLeft_UsesReverseCount(t *testing.T) {
	v := newTestViewer(5, 10, 25, 24)
	v.GotoCol(9)
	require.Equal(t, 8, v.winX)

	v.PageLeft()
	assert.Equal(t, 6, v.winX)
	v.PageLeft()
	assert.Equal(t, 4, v.winX)
	for i := 0; i < 10; i++ {
		v.PageLeft()
	}
	assert.Equal(t, 0, v.winX)
	assert.Equal(t, 0, v.x)
}

func TestLineHomeAndEnd(t *testing.T) {
	v := newTestViewer(5, 10, 25, 24)

	v.LineEnd()
	assert.Equal(t, 9, v.Absolute().X)
	v.LineHome()
	assert.Equal(t, 0, v.Absolute().X)
	assert.Equal(t, 0, v.winX)
}

func TestTopAndBottom(t *testing.T) {
	v := newTestViewer(50, 3, 80, 13)
	v.GotoRow(30)

	v.Top()
	assert.Equal(t, 0, v.Absolute().Y)
	v.GotoRow(v.Table().RowCount() - 1)
	assert.Equal(t, 49, v.Absolute().Y)
}

func TestMarkAndRecall(t *testing.T) {
	v := newTestViewer(50, 10, 25, 13)

	_, ok := v.Mark()
	assert.False(t, ok, "mark unset until first mark command")
	v.GotoMark() // no-op without a mark
	assert.Equal(t, Position{}, v.Absolute())

	v.GotoRow(20)
	v.GotoCol(5)
	v.SetMark()

	v.Top()
	v.LineHome()
	v.GotoMark()
	assert.Equal(t, Position{Y: 20, X: 5}, v.Absolute())

	// marks are overwritten, not stacked
	v.GotoRow(3)
	v.SetMark()
	v.GotoRow(40)
	v.GotoMark()
	assert.Equal(t, 3, v.Absolute().Y)
}

func TestToggleHeader_RoundTrip(t *testing.T) {
	v := newTestViewer(5, 3, 80, 24)
	rows := v.Table().RowCount()
	v.GotoRow(2)
	cell := v.CurrentCell()

	v.ToggleHeader()
	assert.False(t, v.HeaderVisible())
	assert.Equal(t, rows+1, v.Table().RowCount())
	assert.Equal(t, cell, v.CurrentCell(), "cursor follows its cell when the header merges")

	v.ToggleHeader()
	assert.True(t, v.HeaderVisible())
	assert.Equal(t, rows, v.Table().RowCount())
	assert.Equal(t, cell, v.CurrentCell())
	checkInvariants(t, v)
}

func TestResize_ClampsCursorIntoView(t *testing.T) {
	v := newTestViewer(100, 10, 80, 24)
	v.GotoRow(50)
	v.GotoCol(5)

	v.Resize(25, 8)
	checkInvariants(t, v)
	assert.Equal(t, Position{Y: 50, X: 5}, v.Absolute(), "absolute position survives a resize")
	assert.Less(t, v.y, v.visibleRows())
	assert.Less(t, v.x, v.visibleCols())

	// growing back keeps the invariants too
	v.Resize(200, 50)
	checkInvariants(t, v)
}

func TestNavigationSequence_InvariantsHold(t *testing.T) {
	v := newTestViewer(17, 7, 33, 9)

	moves := []func(){
		v.MoveDown, v.MoveRight, v.PageDown, v.PageRight, v.LineEnd,
		v.MoveUp, v.PageUp, v.PageLeft, v.LineHome, v.Top,
		func() { v.GotoRow(16) }, func() { v.GotoCol(6) },
		v.MoveDown, v.MoveDown, v.PageDown, v.PageDown, v.PageRight,
	}
	for i, m := range moves {
		m()
		checkInvariants(t, v)
		_ = i
	}
}

func TestGotoRowThenLineEnd(t *testing.T) {
	// header ["A","B"], rows [["1","2"],["3","4"]]: goto_y(2) then
	// line_end lands on the "4" cell at absolute (1,1)
	tab := NewTable([][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}})
	v := NewViewer(tab, DefaultOptions)

	v.GotoRow(2 - 1)
	v.LineEnd()

	assert.Equal(t, Position{Y: 1, X: 1}, v.Absolute())
	assert.Equal(t, "4", v.CurrentCell())
}

func TestEmptyTable_NavigationIsSafe(t *testing.T) {
	v := NewViewer(NewTable(nil), DefaultOptions)

	v.MoveDown()
	v.MoveRight()
	v.PageDown()
	v.PageRight()
	v.GotoRow(5)
	v.GotoCol(5)
	v.LineEnd()
	v.GotoMark()
	assert.Equal(t, Position{}, v.Absolute())
}

func TestSnapshotRestore_PreservesPosition(t *testing.T) {
	v := newTestViewer(50, 10, 25, 13)
	v.GotoRow(30)
	v.GotoCol(7)
	v.RunSearch("r30")
	snap := v.Snapshot()

	// rebuild over a fresh table, as a reload would
	nv := NewViewer(NewTable(testData(50, 10)), Options{Width: 25, Height: 13})
	nv.Restore(snap)

	assert.Equal(t, v.Absolute(), nv.Absolute())
	assert.Equal(t, PolicyFixed, nv.Layout().Policy())
	assert.Equal(t, 2, nv.Layout().Gap())
	require.NotNil(t, nv.Results())
	assert.Equal(t, "r30", nv.Results().Term)
}

func TestSnapshotRestore_ClampsAgainstSmallerTable(t *testing.T) {
	v := newTestViewer(50, 10, 25, 13)
	v.GotoRow(49)
	v.GotoCol(9)
	snap := v.Snapshot()

	nv := NewViewer(NewTable(testData(5, 3)), Options{Width: 25, Height: 13})
	nv.Restore(snap)
	checkInvariants(t, nv)
	assert.Equal(t, Position{Y: 4, X: 2}, nv.Absolute())
}
