// Package app is folio's composition root.
//
// # Overview
//
// Run loads configuration and preferences, sets up logging, builds the
// Gutendex client and then either starts the TUI or, with Options.Once,
// performs a single headless fetch.
//
// # Startup Sequence
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read ~/.config/folio/config.toml
//	       ├─────> applyOverrides()      Command-line flags win
//	       ├─────> prefs.Load()          Theme and last language
//	       ├─────> logging.Setup()       logrus to the log file
//	       ├─────> gutendex.NewClient()  resty + cache + rate limiter
//	       │
//	       ├─ Once ──> RunOnce()         Fetch, print table, return
//	       │
//	       └─ TUI ──> errgroup
//	                   ├─> metrics.Serve()  only when metrics_addr is set
//	                   └─> ui.Run()         blocks until quit
//
// When the TUI exits the shared context is cancelled, which stops the
// metrics server. A metrics server failure cancels the TUI in turn.
//
// # Headless Mode
//
// RunOnce drives the same state.Reduce machine as the TUI with exactly one
// request. Success prints a lipgloss table and a page summary; an empty
// listing prints the empty-state message; an Error result is returned as an
// error so main exits with status 1.
//
// # Initial Filter
//
// The search text comes from --query. The language comes from --language
// when given ("any" clears it), otherwise from the language remembered in
// prefs.
package app
