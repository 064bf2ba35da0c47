package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// endpoint and the footer shows fewer hints.
	LayoutCompactWidth = 80
)

// Layout sizes.
const (
	// chromeHeight is the number of lines used by the header, the draft
	// input and the footer.
	chromeHeight = 3

	// MaxTextLength caps what the inputs accept for one item.
	MaxTextLength = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default refresh interval for gateway health.
	DefaultUIInterval = time.Second
)
