// Package ui provides folio's Bubble Tea terminal interface.
//
// # Layout
//
// The main screen stacks four regions:
//
//   - Header: logo, active language and search text, fetch phase, theme
//   - Search bar: a bubbles textinput, focused with "/"
//   - Results: spinner, error panel, empty panel or a grid of book cards
//   - Footer: page indicator, result count and short key help
//
// Help (?), book detail (enter) and diagnostics (D) are full-screen
// overlays.
//
// # Data Flow
//
// Model holds a state.State and never mutates it directly. Key handling turns
// input into state events and passes them to dispatch, which runs
// state.Reduce. When the reducer returns a Request, dispatch returns a
// tea.Cmd that calls the BookFetcher and reports back with
// state.FetchSucceeded or state.FetchFailed carrying the request's sequence
// number. Update feeds those through complete; stale completions are dropped
// by the reducer and counted in the superseded metric.
//
// Typing in the search bar schedules a debounce tick. The query is committed
// when the tick fires and no later edit happened, or immediately on enter.
//
// # Rendering
//
// Rendering is a pure function of the model. Cards are fixed size
// (cardWidth x cardHeight) and the grid adapts its column count to the
// terminal width; the row holding the selection is kept on screen.
//
// # Preferences
//
// Theme (T) and language changes are written to the prefs file immediately.
// Save failures are logged and otherwise ignored.
package ui
