package cmd

import (
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/pinwheel-labs/tabulon/tui"
)

const tabulonASCII = `@@@@@@@  @@@@@@  @@@@@@@  @@@  @@@ @@@      @@@@@@  @@@  @@@
@@!!@@!! @@!@!@@ @@!  @@@ @@!  @@@ @@!     @@!  @@@ @@!@!@@@
  @!!    @!@!@!@ @!@!@!@  @!@  !@! @!!     @!@  !@! @!@@!!@!
  !!:    !!:  !! !!:  !!! !!:  !!! !!:     !!:  !!! !!:  !!!
   ::     :   :: :::: ::   ::::::  ::::::   ::::::   ::   ::`

// RenderBanner returns the styled banner shown by the version command
func RenderBanner() string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(tui.RGBPink).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tui.RGBBlue).
		Italic(true)

	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		MarginBottom(1)

	banner := bannerStyle.Render(tabulonASCII)
	subtitle := subtitleStyle.Render("tabulon - a terminal viewer for tabular data")

	return containerStyle.Render(banner + "\n" + subtitle)
}
