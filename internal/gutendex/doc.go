// Package gutendex provides an HTTP client for the Gutendex book catalog API.
//
// # Overview
//
// Gutendex serves Project Gutenberg metadata as JSON. folio only reads the
// /books listing endpoint, filtered by free-text search and language:
//
//	GET https://gutendex.com/books/?search=dom&languages=pt
//
// Each response is a page of up to 32 books plus absolute next/previous links.
//
// # Request Construction
//
// BuildURL turns a Query into a URL:
//
//   - Search and Languages are trimmed; empty values are omitted
//   - Values are percent-encoded (spaces become %20)
//   - With neither set, the unfiltered default listing is requested
//   - PageURL, when set, is used verbatim and must be absolute
//
// # Response Handling
//
// A response is accepted only when:
//
//  1. The status is 2xx (otherwise *StatusError)
//  2. The body is JSON matching the listing schema, including a results array
//     (otherwise ErrMalformedResponse)
//
// Requests that never produce a response return *NetworkError. UserMessage
// converts any of these into the text shown in the UI: network failures keep
// the underlying cause, everything else becomes GenericFailureMessage.
//
// Titles, names, subjects and bookshelves are sanitized on decode: markup is
// stripped with bluemonday and control characters are removed so catalog text
// cannot inject terminal escape sequences.
//
// # Caching and Throttling
//
// Options.CacheTTL enables an expiring LRU keyed by request URL. Only
// successful listings are cached. Options.RateLimit installs a token bucket
// shared by all requests from the client; waiting honours the request context.
//
// The client never retries. A failed fetch is terminal and the caller decides
// whether to issue another.
//
// # Testing
//
// BookFetcher is the seam used by the UI and the headless runner; tests supply
// fakes instead of a live server. Client tests use net/http/httptest.
package gutendex
