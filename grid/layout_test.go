package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLayout(t *testing.T, cols, width, gap int) (*Table, *Layout) {
	t.Helper()
	tab := NewTable(testData(5, cols))
	return tab, NewLayout(tab, LayoutOptions{Policy: PolicyFixed, FixedWidth: width, Gap: gap})
}

func TestCountForward_PartialColumnDoesNotCount(t *testing.T) {
	// W=25, widths [10,10,10], gap 2: 10+2+10=22 fits, +2+10=34 does not
	_, l := fixedLayout(t, 3, 10, 2)

	assert.Equal(t, 2, l.CountForward(0, 25))
	assert.Equal(t, 2, l.CountForward(1, 25))
	assert.Equal(t, 1, l.CountForward(2, 25))
}

func TestCountForward_AlwaysAtLeastOne(t *testing.T) {
	_, l := fixedLayout(t, 3, 40, 2)
	assert.Equal(t, 1, l.CountForward(0, 10))
}

func TestCountBackward(t *testing.T) {
	_, l := fixedLayout(t, 5, 10, 2)

	assert.Equal(t, 2, l.CountBackward(4, 25))
	assert.Equal(t, 3, l.CountBackward(4, 40))
	assert.Equal(t, 1, l.CountBackward(0, 25))
}

func TestVisibleColumns_Offsets(t *testing.T) {
	_, l := fixedLayout(t, 3, 10, 2)

	slots := l.VisibleColumns(0, 25)
	require.Len(t, slots, 2)
	assert.Equal(t, ColumnSlot{Col: 0, X: 0, Width: 10}, slots[0])
	assert.Equal(t, ColumnSlot{Col: 1, X: 12, Width: 10}, slots[1])
}

func TestVisibleColumns_TrailingPartial(t *testing.T) {
	_, l := fixedLayout(t, 3, 10, 2)

	// 28 cells leaves 4 cells after two full columns: enough for a
	// truncated third column
	slots := l.VisibleColumns(0, 28)
	require.Len(t, slots, 3)
	assert.True(t, slots[2].Truncated)
	assert.Equal(t, 2, slots[2].Col)
	assert.Equal(t, 24, slots[2].X)
	assert.Equal(t, 4, slots[2].Width)

	// 26 cells leaves only 2: partial column suppressed
	slots = l.VisibleColumns(0, 26)
	require.Len(t, slots, 2)
}

func TestVisibleColumns_OverWideColumn(t *testing.T) {
	_, l := fixedLayout(t, 2, 200, 2)

	slots := l.VisibleColumns(0, 30)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Truncated)
	assert.Equal(t, 30, slots[0].Width)
}

func TestPolicyMax_CapsAndFloors(t *testing.T) {
	tab := NewTable([][]string{
		{"a", "b"},
		{strings.Repeat("x", 400), ""},
	})
	l := NewLayout(tab, LayoutOptions{Policy: PolicyMax, Gap: 2})

	w := l.Widths()
	require.Len(t, w, 2)
	assert.Equal(t, maxColumnWidth, w[0], "over-long content capped")
	assert.Equal(t, minColumnWidth, w[1], "near-empty column floored")
}

func TestPolicyMode_OutlierIgnored(t *testing.T) {
	rows := [][]string{{"word", "other"}}
	for i := 0; i < 20; i++ {
		rows = append(rows, []string{"abcde", "xy"})
	}
	rows = append(rows, []string{strings.Repeat("z", 60), "xy"})
	l := NewLayout(NewTable(rows), LayoutOptions{Policy: PolicyMode, Gap: 2})

	// the single 60-wide outlier loses to the modal width 5
	assert.Equal(t, 5, l.Widths()[0])
}

func TestPolicyMode_UniformlyLongUsesMax(t *testing.T) {
	rows := [][]string{{"h", "h"}}
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{strings.Repeat("a", 10), "x"})
	}
	rows = append(rows, []string{strings.Repeat("a", 12), "x"})
	l := NewLayout(NewTable(rows), LayoutOptions{Policy: PolicyMode, Gap: 2})

	// modal 10 vs max 12: close enough that max wins
	assert.Equal(t, 12, l.Widths()[0])
}

func TestCyclePolicy(t *testing.T) {
	tab, l := fixedLayout(t, 2, 10, 2)

	assert.Equal(t, PolicyFixed, l.Policy())
	l.CyclePolicy(tab)
	assert.Equal(t, PolicyMax, l.Policy())
	l.CyclePolicy(tab)
	assert.Equal(t, PolicyMode, l.Policy())
	l.CyclePolicy(tab)
	assert.Equal(t, PolicyFixed, l.Policy())
	assert.Equal(t, 10, l.Widths()[0], "fixed width survives the cycle")
}

func TestWidthAdjustments(t *testing.T) {
	_, l := fixedLayout(t, 2, 10, 2)

	l.GrowWidths()
	assert.Equal(t, []int{12, 12}, l.Widths())

	l.ShrinkWidths()
	l.ShrinkWidths()
	assert.Equal(t, []int{8, 8}, l.Widths())

	// shrinking never drops below a single cell
	for i := 0; i < 30; i++ {
		l.ShrinkWidths()
	}
	assert.Equal(t, []int{1, 1}, l.Widths())

	l.GrowColumn(0)
	assert.Equal(t, 3, l.Widths()[0], "grow floors back to the minimum")
	assert.Equal(t, 1, l.Widths()[1])

	l.ShrinkColumn(99) // out of range: no-op
}

func TestGapAdjustments(t *testing.T) {
	_, l := fixedLayout(t, 2, 10, 0)

	l.ShrinkGap()
	assert.Equal(t, 0, l.Gap(), "gap never negative")
	l.GrowGap()
	assert.Equal(t, 1, l.Gap())
	for i := 0; i < 30; i++ {
		l.GrowGap()
	}
	assert.Equal(t, maxColumnGap, l.Gap())
}

func TestParseWidthPolicy(t *testing.T) {
	for name, want := range map[string]WidthPolicy{"fixed": PolicyFixed, "max": PolicyMax, "mode": PolicyMode} {
		got, ok := ParseWidthPolicy(name)
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}
	_, ok := ParseWidthPolicy("banana")
	assert.False(t, ok)
}
