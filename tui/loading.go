package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/lipgloss/v2"
)

func (m *Model) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	title := TitleStyle.Render("Loading")
	fileInfo := SubtitleStyle.Render(fmt.Sprintf("\n%s", m.path))

	return spinnerStyle.Render(fmt.Sprintf("%s %s%s", m.loadingSpinner.View(), title, fileInfo))
}

func (m *Model) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	return errorStyle.Render(fmt.Sprintf("❌ Error loading file\n\n%v\n\nPress 'q' to quit", m.err))
}

func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
