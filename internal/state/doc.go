// Package state holds the catalog query state machine.
//
// # Overview
//
// folio's only stateful piece is the pair of a Filter (search text plus
// language) and a Result describing the latest fetch. Both live in a State
// value that changes only through Reduce:
//
//	Idle ──filter change──> Loading ──ok──> Success(books)
//	                           │
//	                           └──fail──> Error(message)
//
// Every filter change, refresh or page request moves the state back to
// Loading and returns a Request. The caller performs the fetch and feeds the
// outcome back as FetchSucceeded or FetchFailed carrying the request's Seq.
//
// # Supersession
//
// Sequence numbers increase monotonically. A completion is applied only when
// its Seq is the latest issued and that request is still Loading; anything
// else is counted in State.Discarded and otherwise ignored. Network calls are
// never cancelled, only their effect is suppressed.
//
// # Concurrency Model
//
// State is a plain value with a single writer (the Bubble Tea update loop or
// the headless runner). It needs no locking; fetches run in commands and only
// their completion events reach Reduce.
//
// # Rendering
//
// ModeOf maps a Result to one of four display modes: spinner, error panel,
// empty panel and card grid. An empty Success is ModeEmpty, never an error.
package state
