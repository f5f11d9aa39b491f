package state

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/five82/folio/internal/gutendex"
)

// Filter is the user-controlled query and language pair.
type Filter struct {
	Query    string
	Language string // empty means any language
}

// NewFilter returns a Filter with trimmed values.
func NewFilter(query, language string) Filter {
	return Filter{Query: strings.TrimSpace(query), Language: strings.TrimSpace(language)}
}

// Active reports whether either value narrows the listing.
func (f Filter) Active() bool {
	return f.Query != "" || f.Language != ""
}

func (f Filter) catalogQuery() gutendex.Query {
	return gutendex.Query{Search: f.Query, Languages: f.Language}
}

// Phase identifies the active Result variant.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseSuccess:
		return "success"
	default:
		return "idle"
	}
}

// Result is the outcome of the most recent fetch. Message is set only for
// PhaseError; Books and the pagination fields only for PhaseSuccess.
type Result struct {
	Phase    Phase
	Message  string
	Books    []gutendex.Book
	Count    int
	Next     string
	Previous string
}

// Request is a fetch the caller must perform. Its Seq tags the completion
// event so Reduce can recognise superseded responses.
type Request struct {
	Seq    uint64
	Filter Filter
	Query  gutendex.Query
	Page   int
}

// State is owned by a single writer and only changes through Reduce.
type State struct {
	Filter Filter
	Result Result
	Page   int // 1-based page of the displayed listing

	// Discarded counts completions dropped because a newer request was issued.
	Discarded int

	seq     uint64
	current Request
}

// Seq returns the sequence number of the latest issued request.
func (s State) Seq() uint64 { return s.seq }

// Current returns the latest issued request.
func (s State) Current() Request { return s.current }

// HasNext reports whether a following page can be requested.
func (s State) HasNext() bool {
	return s.Result.Phase == PhaseSuccess && s.Result.Next != ""
}

// HasPrevious reports whether a preceding page can be requested.
func (s State) HasPrevious() bool {
	return s.Result.Phase == PhaseSuccess && s.Result.Previous != ""
}

func (s State) begin(filter Filter, query gutendex.Query, page int) (State, *Request) {
	s.seq++
	s.Filter = filter
	req := Request{Seq: s.seq, Filter: filter, Query: query, Page: page}
	s.current = req
	s.Result = Result{Phase: PhaseLoading}
	return s, &req
}

func pageOf(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 1
	}
	page, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
