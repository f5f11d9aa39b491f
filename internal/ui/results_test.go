package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/folio/internal/gutendex"
	"github.com/five82/folio/internal/state"
)

func TestEmptyStateMessage(t *testing.T) {
	cases := []struct {
		name   string
		filter state.Filter
		want   string
	}{
		{"no filter", state.Filter{}, "Use the search bar and the language selector to find books."},
		{"query", state.Filter{Query: "zzzzz"}, `Try a different search or language for "zzzzz".`},
		{"language", state.Filter{Language: "pt"}, `Try a different search or language for "your selection" in Portuguese.`},
		{"both", state.Filter{Query: "dom", Language: "fr"}, `Try a different search or language for "dom" in French.`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EmptyStateMessage(tc.filter))
		})
	}
}

func TestStatusSummary(t *testing.T) {
	next := "https://gutendex.com/books/?page=3"
	s, req := state.Reduce(state.State{}, state.Refresh{})
	s, _ = state.Reduce(s, state.FetchSucceeded{Seq: req.Seq, Listing: gutendex.Listing{
		Count:   1234,
		Next:    &next,
		Results: []gutendex.Book{{ID: 1}},
	}})

	assert.Equal(t, "Page 1 · 1,234 books · 1 shown · next ▶", StatusSummary(s))

	loading, _ := state.Reduce(s, state.Refresh{})
	assert.Equal(t, "", StatusSummary(loading))
}

func TestRenderResults_Modes(t *testing.T) {
	m := New(Options{})
	m.width, m.height = 100, 30

	assert.Contains(t, m.renderResults(100, 20), loadingText)

	m.state, _ = state.Reduce(m.state, state.FetchFailed{Seq: m.state.Seq(), Err: &gutendex.NetworkError{URL: "x", Err: assertErr("connection refused")}})
	out := m.renderResults(100, 20)
	assert.Contains(t, out, errorTitle)
	assert.Contains(t, out, "connection refused")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
