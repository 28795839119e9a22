package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// Color constants
var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

// General styles
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(RGBGrey)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBBlue)

	CursorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink).
		Background(RGBSubtlePink)

	MatchStyle = lipgloss.NewStyle().
		Foreground(RGBYellow)

	RuleStyle = lipgloss.NewStyle().
		Foreground(RGBGrey).
		Faint(true)

	StatusStyle = lipgloss.NewStyle().
		Faint(true)

	FlashStyle = lipgloss.NewStyle().
		Foreground(RGBGreen)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(RGBPink)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(RGBRed).
		Bold(true)
)
