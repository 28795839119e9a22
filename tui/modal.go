package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/charmbracelet/lipgloss/v2"
)

// helpBinding pairs a key identity with what it does. Keys must match
// the dispatcher's keymap; a test enforces that.
type helpBinding struct {
	key  string
	desc string
}

var helpSections = []struct {
	title    string
	bindings []helpBinding
}{
	{"Navigation", []helpBinding{
		{"j", "move down (arrows work too)"},
		{"k", "move up"},
		{"h", "move left"},
		{"l", "move right"},
		{"J", "page down"},
		{"K", "page up"},
		{"L", "page right"},
		{"H", "page left"},
		{"g", "go to first row"},
		{"G", "go to last row, or row N with a count"},
		{"|", "go to first column, or column N with a count"},
		{"^", "start of line"},
		{"$", "end of line"},
	}},
	{"Marks", []helpBinding{
		{"m", "set mark at the cursor"},
		{"'", "jump to the mark"},
	}},
	{"Search", []helpBinding{
		{"/", "search all cells"},
		{"n", "next match"},
		{"p", "previous match"},
	}},
	{"Sorting", []helpBinding{
		{"s", "sort by column, lexical ascending"},
		{"S", "sort by column, lexical descending"},
		{"a", "sort by column, natural ascending"},
		{"A", "sort by column, natural descending"},
		{"f", "sort by column, numeric ascending"},
		{"F", "sort by column, numeric descending"},
	}},
	{"Display", []helpBinding{
		{"t", "toggle header row"},
		{">", "widen all columns"},
		{"<", "narrow all columns"},
		{"+", "widen current column"},
		{"-", "narrow current column"},
		{"]", "widen column gap"},
		{"[", "narrow column gap"},
		{"w", "cycle column width policy"},
	}},
	{"Other", []helpBinding{
		{"enter", "show the full cell in a popup"},
		{"y", "yank cell to clipboard"},
		{"i", "file metadata"},
		{"r", "reload the file"},
		{"?", "this help"},
		{"q", "quit"},
	}},
}

func (m *Model) openModal(kind ModalKind) {
	m.activeModal = kind
	m.mode = modeModal
	m.sizeModal()
	m.modal.GotoTop()
}

func (m *Model) sizeModal() {
	w, h := m.modalDimensions()
	innerW := w - modalChromeLines
	innerH := h - modalChromeLines

	if m.modal.Width() == 0 {
		m.modal = viewport.New(viewport.WithWidth(innerW), viewport.WithHeight(innerH))
	} else {
		m.modal.SetWidth(innerW)
		m.modal.SetHeight(innerH)
	}
	m.modal.SetContent(m.modalContent(innerW))
}

func (m *Model) modalDimensions() (w, h int) {
	w = int(float64(m.width) * modalWidthRatio)
	h = int(float64(m.height) * modalHeightRatio)
	if w < minModalWidth {
		w = minModalWidth
	}
	if h < minModalHeight {
		h = minModalHeight
	}
	return w, h
}

func (m *Model) modalTitle() string {
	switch m.activeModal {
	case ModalCell:
		abs := m.viewer.Absolute()
		return "Cell " + cellLabel(abs.X, abs.Y)
	case ModalMeta:
		return "File Metadata"
	default:
		return "Key Bindings"
	}
}

func (m *Model) modalContent(width int) string {
	switch m.activeModal {
	case ModalCell:
		// wrap long cells to the modal width
		return lipgloss.NewStyle().Width(width).Render(m.viewer.CurrentCell())
	case ModalMeta:
		return m.metaContent()
	default:
		return helpContent()
	}
}

func (m *Model) metaContent() string {
	t := m.viewer.Table()

	lines := []string{
		fmt.Sprintf("File:         %s", m.sourceName()),
		fmt.Sprintf("Size:         %d bytes", m.source.Size),
		fmt.Sprintf("Encoding:     %s", m.source.Encoding),
		fmt.Sprintf("Delimiter:    %s", printableDelimiter(m.source.Delimiter)),
		fmt.Sprintf("Fingerprint:  %s", m.source.Fingerprint),
		"",
		fmt.Sprintf("Rows:         %d", t.RowCount()),
		fmt.Sprintf("Columns:      %d", t.Columns()),
		fmt.Sprintf("Header row:   %v", m.viewer.HeaderVisible()),
	}
	if m.loadTime > 0 {
		lines = append(lines, fmt.Sprintf("Loaded in:    %v", m.loadTime))
	}
	return strings.Join(lines, "\n")
}

func helpContent() string {
	var builder strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(SubtitleStyle.Render(section.title))
		builder.WriteString("\n")
		for _, b := range section.bindings {
			builder.WriteString(fmt.Sprintf("  %s  %s\n", HelpKeyStyle.Render(fmt.Sprintf("%-6s", b.key)), b.desc))
		}
	}
	builder.WriteString("\nA leading count repeats a movement: 12j moves down 12 rows.")
	return builder.String()
}

func printableDelimiter(d rune) string {
	switch d {
	case '\t':
		return "\\t (tab)"
	case 0:
		return "(auto)"
	default:
		return string(d)
	}
}

func (m *Model) renderModalView() string {
	w, h := m.modalDimensions()

	modalStyle := lipgloss.NewStyle().
		Width(w).
		Height(h).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBBlue)

	helpStyle := lipgloss.NewStyle().
		Foreground(RGBGrey).
		Faint(true).
		Width(w - modalChromeLines).
		Align(lipgloss.Center)

	var modal strings.Builder
	modal.WriteString(titleStyle.Render(m.modalTitle()))
	modal.WriteString("\n")
	modal.WriteString(m.modal.View())
	modal.WriteString("\n")
	modal.WriteString(helpStyle.Render("↑/↓: Scroll | Esc: Close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(modal.String()))
}
