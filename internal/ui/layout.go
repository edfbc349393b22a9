package ui

import "time"

// Screen rows outside the main content box.
const (
	// chromeRows covers the header, command bar, filter bar and status bar.
	chromeRows = 4

	// boxBorderRows is the top and bottom border of a content box.
	boxBorderRows = 2
)

// Column widths for the record list.
const (
	timeColumnWidth  = 12 // 15:04:05.000
	levelColumnWidth = 7
	dynoColumnWidth  = 10

	// LayoutCompactWidth is the threshold below which the dyno column is hidden.
	LayoutCompactWidth = 80

	// splitListPercent is the share of the width given to the list in Split view.
	splitListPercent = 60
)

// DefaultTickInterval is the default UI refresh interval.
const DefaultTickInterval = 100 * time.Millisecond
