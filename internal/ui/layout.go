package ui

import "time"

// Card grid geometry, in terminal cells. cardHeight includes the border.
const (
	cardWidth     = 34
	cardHeight    = 7
	cardGap       = 1
	cardTitleRows = 2
)

// Chrome above and below the results area: header, search bar, status line.
const (
	headerRows = 1
	searchRows = 3
	footerRows = 1
)

// LayoutCompactWidth is the width below which the header drops its labels.
const LayoutCompactWidth = 80

// Diagnostics overlay limits.
const (
	diagnosticsLines       = 500
	diagnosticsRefreshTick = 2 * time.Second
)

// DefaultSearchDebounce applies when Options.SearchDebounce is zero.
const DefaultSearchDebounce = 400 * time.Millisecond
