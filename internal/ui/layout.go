package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which tag chips are hidden.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show folder titles next to
	// dashboards in filtered results.
	LayoutWideWidth = 140
)

// Fixed rows around the list pane: header, command bar, filter bar, status
// line, and the pane's own top and bottom border.
const chromeHeight = 6

// Modal sizes.
const (
	modalWidth     = 60
	helpWidth      = 72
	tagPickerRows  = 10
	moveSelectRows = 12
)
