// Package logtail reads the end of folio's own log file for the diagnostics
// overlay.
//
// Read seeks backwards from the end of the file in fixed blocks until it has
// seen enough newlines, so a long-running log does not have to be scanned in
// full. Missing files return nil, nil.
//
// Parse splits a logrus TextFormatter line (time=... level=... msg=...
// key=value...) into an Entry so the UI can colour lines by level and show
// the request sequence next to each fetch event. Lines in any other format
// are kept verbatim as the message.
package logtail
