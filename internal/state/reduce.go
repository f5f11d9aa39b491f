package state

import (
	"strings"

	"github.com/five82/folio/internal/gutendex"
)

// Event is an input to Reduce.
type Event interface {
	event()
}

// QueryChanged replaces the search text.
type QueryChanged struct{ Query string }

// LanguageChanged replaces the language code; empty means any.
type LanguageChanged struct{ Language string }

// FilterChanged replaces both filter values at once.
type FilterChanged struct{ Filter Filter }

// ClearFilter resets both filter values and requests the default listing.
type ClearFilter struct{}

// Refresh re-issues the latest request under a new sequence number and
// asks the fetcher to bypass any cached listing.
type Refresh struct{}

// PageDirection selects a neighbouring listing page.
type PageDirection int

const (
	PageNext PageDirection = iota
	PagePrevious
)

// PageRequested fetches the neighbouring page of the current listing.
type PageRequested struct{ Direction PageDirection }

// FetchSucceeded completes request Seq with a listing.
type FetchSucceeded struct {
	Seq     uint64
	Listing gutendex.Listing
}

// FetchFailed completes request Seq with an error.
type FetchFailed struct {
	Seq uint64
	Err error
}

func (QueryChanged) event()    {}
func (LanguageChanged) event() {}
func (FilterChanged) event()   {}
func (ClearFilter) event()     {}
func (Refresh) event()         {}
func (PageRequested) event()   {}
func (FetchSucceeded) event()  {}
func (FetchFailed) event()     {}

// Reduce applies ev to s and returns the next state. A non-nil Request means
// the caller must perform that fetch and feed its completion back as
// FetchSucceeded or FetchFailed; the returned state is already Loading.
//
// Completions whose Seq is not the latest issued, or that arrive after the
// latest request already resolved, leave the state untouched apart from the
// Discarded counter.
func Reduce(s State, ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case QueryChanged:
		f := s.Filter
		f.Query = strings.TrimSpace(ev.Query)
		return s.begin(f, f.catalogQuery(), 1)

	case LanguageChanged:
		f := s.Filter
		f.Language = strings.TrimSpace(ev.Language)
		return s.begin(f, f.catalogQuery(), 1)

	case FilterChanged:
		f := NewFilter(ev.Filter.Query, ev.Filter.Language)
		return s.begin(f, f.catalogQuery(), 1)

	case ClearFilter:
		return s.begin(Filter{}, gutendex.Query{}, 1)

	case Refresh:
		if s.seq == 0 {
			q := s.Filter.catalogQuery()
			q.Fresh = true
			return s.begin(s.Filter, q, 1)
		}
		cur := s.current
		page := cur.Page
		if page < 1 {
			page = 1
		}
		q := cur.Query
		q.Fresh = true
		return s.begin(s.Filter, q, page)

	case PageRequested:
		var link string
		switch ev.Direction {
		case PageNext:
			if !s.HasNext() {
				return s, nil
			}
			link = s.Result.Next
		case PagePrevious:
			if !s.HasPrevious() {
				return s, nil
			}
			link = s.Result.Previous
		default:
			return s, nil
		}
		return s.begin(s.Filter, gutendex.Query{PageURL: link}, pageOf(link))

	case FetchSucceeded:
		if !s.awaiting(ev.Seq) {
			s.Discarded++
			return s, nil
		}
		books := ev.Listing.Results
		if books == nil {
			books = []gutendex.Book{}
		}
		s.Result = Result{
			Phase:    PhaseSuccess,
			Books:    books,
			Count:    ev.Listing.Count,
			Next:     ev.Listing.NextURL(),
			Previous: ev.Listing.PreviousURL(),
		}
		s.Page = s.current.Page
		return s, nil

	case FetchFailed:
		if !s.awaiting(ev.Seq) {
			s.Discarded++
			return s, nil
		}
		s.Result = Result{Phase: PhaseError, Message: gutendex.UserMessage(ev.Err)}
		return s, nil
	}
	return s, nil
}

func (s State) awaiting(seq uint64) bool {
	return seq != 0 && seq == s.seq && s.Result.Phase == PhaseLoading
}
