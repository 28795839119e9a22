package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/pinwheel-labs/tabulon/grid"
	"github.com/pinwheel-labs/tabulon/loader"
	"github.com/pinwheel-labs/tabulon/tui"
)

func LaunchTUI(dataFile string, loadOpts loader.Options, gridOpts grid.Options) error {
	model := tui.NewModel(dataFile, loadOpts, gridOpts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
