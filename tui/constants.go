package tui

const (
	statusBarHeight = 1

	// modal sizing
	modalWidthRatio  = 0.8
	modalHeightRatio = 0.8
	minModalWidth    = 20
	minModalHeight   = 6
	modalChromeLines = 4 // border + title + help line

	truncationMark = "…"
)
