package ui

import "time"

// Layout constants.
const (
	headerHeight = 2
	footerHeight = 2

	// LayoutCompactWidth is the threshold below which list columns are dropped.
	LayoutCompactWidth = 80

	formWidth = 52
)

// Timing constants.
const (
	// SearchDebounce is the default quiet period before a search is sent.
	SearchDebounce = 400 * time.Millisecond
)
