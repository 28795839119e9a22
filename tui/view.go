package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pinwheel-labs/tabulon/grid"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.loadState {
	case LoadStateLoading:
		return m.renderLoadingView()
	case LoadStateError:
		return m.renderErrorView()
	}

	if !m.ready || m.viewer == nil {
		return "Initializing..."
	}

	if m.mode == modeModal {
		return m.renderModalView()
	}
	return m.renderGridView()
}

func (m *Model) renderGridView() string {
	var builder strings.Builder

	builder.WriteString(m.renderChrome())
	builder.WriteString("\n")
	builder.WriteString(m.renderRule())
	builder.WriteString("\n")
	builder.WriteString(m.renderRows())
	builder.WriteString("\n")

	if m.mode == modeSearch {
		builder.WriteString(m.renderSearchBar())
	} else {
		builder.WriteString(m.renderStatusBar())
	}

	return builder.String()
}

// renderChrome draws the top line: spreadsheet-style label for the
// cursor cell plus the escaped cell contents.
func (m *Model) renderChrome() string {
	abs := m.viewer.Absolute()
	label := cellLabel(abs.X, abs.Y)

	avail := m.width - runewidth.StringWidth(label) - 1
	if avail < 0 {
		avail = 0
	}
	echo := strings.ReplaceAll(m.viewer.CurrentCell(), "\n", "\\n")
	echo = runewidth.Truncate(echo, avail, truncationMark)

	return TitleStyle.Render(label) + " " + echo
}

func (m *Model) renderRule() string {
	return RuleStyle.Render(strings.Repeat("─", max(m.width, 0)))
}

// renderRows draws the header row (when visible) and every data row
// of the current window, one padded cell per visible column slot.
func (m *Model) renderRows() string {
	v := m.viewer
	t := v.Table()
	_, winY := v.Scroll()
	curX, curY := v.Cursor()

	slots := m.visibleSlots()
	gap := strings.Repeat(" ", v.Layout().Gap())

	_, gridH := v.Size()
	visible := gridH - v.HeaderOffset()
	if visible < 1 {
		visible = 1
	}

	lines := make([]string, 0, visible+1)
	if v.HeaderVisible() {
		cells := make([]string, len(slots))
		for i, slot := range slots {
			cells[i] = HeaderStyle.Render(padCell(t.HeaderCell(slot.Col), slot.Width))
		}
		lines = append(lines, strings.Join(cells, gap))
	}

	for i := 0; i < visible; i++ {
		y := winY + i
		if y >= t.RowCount() {
			lines = append(lines, "")
			continue
		}
		cells := make([]string, len(slots))
		for j, slot := range slots {
			text := padCell(t.Cell(y, slot.Col), slot.Width)
			switch {
			case i == curY && j == curX:
				text = CursorStyle.Render(text)
			case m.isMatch(grid.Position{Y: y, X: slot.Col}):
				text = MatchStyle.Render(text)
			}
			cells[j] = text
		}
		lines = append(lines, strings.Join(cells, gap))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) visibleSlots() []grid.ColumnSlot {
	winX, _ := m.viewer.Scroll()
	w, _ := m.viewer.Size()
	return m.viewer.Layout().VisibleColumns(winX, w)
}

// isMatch reports whether the cell is a hit of the active search.
func (m *Model) isMatch(p grid.Position) bool {
	results := m.viewer.Results()
	if results == nil {
		return false
	}
	for _, hit := range results.Hits {
		if hit == p {
			return true
		}
	}
	return false
}

func (m *Model) renderStatusBar() string {
	v := m.viewer
	t := v.Table()

	var parts []string
	parts = append(parts, m.sourceName())
	parts = append(parts, fmt.Sprintf("%d rows × %d cols", t.RowCount(), t.Columns()))
	parts = append(parts, "width: "+v.Layout().Policy().String())

	if results := v.Results(); results != nil {
		if results.Count() == 0 {
			parts = append(parts, fmt.Sprintf("%q not found", results.Term))
		} else {
			parts = append(parts, fmt.Sprintf("%q %d/%d", results.Term, results.Index()+1, results.Count()))
		}
	}

	if mod := v.Modifier(); mod != "" {
		parts = append(parts, "·"+mod)
	}

	parts = append(parts, "?: help")

	line := StatusStyle.Render(strings.Join(parts, " | "))
	if m.flash != "" {
		line += "  " + FlashStyle.Render(m.flash)
	}
	return line
}

func (m *Model) renderSearchBar() string {
	return m.searchInput.View()
}

func (m *Model) sourceName() string {
	if m.source == nil {
		return "(no source)"
	}
	return m.source.Name()
}

// cellLabel converts a 0-based coordinate to spreadsheet notation:
// column letters, a dash, then the 1-based row number ("A-1", "AB-12").
func cellLabel(x, y int) string {
	name := ""
	for n := x; ; {
		name = string(rune('A'+n%26)) + name
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return fmt.Sprintf("%s-%d", name, y+1)
}

// padCell trims a cell to the slot width and pads it back out so
// columns stay aligned, counting display cells rather than bytes.
// Embedded newlines would break the row, so they render as "\n".
func padCell(s string, width int) string {
	if strings.ContainsRune(s, '\n') {
		s = strings.ReplaceAll(s, "\n", "\\n")
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, truncationMark), width)
}
