package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/five82/folio/internal/gutendex"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/state"
)

type mockFetcher struct {
	mock.Mock
}

func (f *mockFetcher) FetchBooks(ctx context.Context, q gutendex.Query) (gutendex.Listing, error) {
	args := f.Called(ctx, q)
	return args.Get(0).(gutendex.Listing), args.Error(1)
}

var withSeq = mock.MatchedBy(func(ctx context.Context) bool {
	_, ok := ctx.Value(logging.SeqKey).(uint64)
	return ok
})

func books(titles ...string) gutendex.Listing {
	out := gutendex.Listing{Count: len(titles), Results: []gutendex.Book{}}
	for i, title := range titles {
		out.Results = append(out.Results, gutendex.Book{ID: i + 1, Title: title})
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fetchResults runs the fetch commands inside cmd and returns their messages.
func fetchResults(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, fetchResults(t, c)...)
		}
		return out
	case state.FetchSucceeded, state.FetchFailed:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func newTestModel(t *testing.T, f gutendex.BookFetcher, opts Options) Model {
	t.Helper()
	opts.Fetcher = f
	if opts.Languages == nil {
		opts.Languages = []string{"", "pt"}
	}
	opts.SearchDebounce = time.Millisecond
	m := New(opts)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// settle delivers the initial listing so the model is idle on Success.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	msgs := fetchResults(t, m.Init())
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])
	return m
}

func search(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m, _ = update(t, m, runes("/"))
	require.True(t, m.searching)
	m, _ = update(t, m, runes(text))
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModel_InitialLoadRendersGrid(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("Pride and Prejudice"), nil).Once()

	m := newTestModel(t, f, Options{})
	assert.Contains(t, m.View(), loadingText)

	m = settle(t, m)
	assert.Equal(t, state.ModeGrid, state.ModeOf(m.state.Result))
	assert.Contains(t, m.View(), "Pride and Prejudice")
	f.AssertExpectations(t)
}

func TestModel_SearchShowsBooksInOrder(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books(), nil).Once()
	f.On("FetchBooks", withSeq, gutendex.Query{Search: "dom"}).
		Return(books("Dom Casmurro", "Memórias Póstumas"), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, cmd := search(t, m, "dom")
	assert.False(t, m.searching)
	assert.Equal(t, state.PhaseLoading, m.state.Result.Phase)

	msgs := fetchResults(t, cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	require.Len(t, m.state.Result.Books, 2)
	assert.Equal(t, "Dom Casmurro", m.state.Result.Books[0].Title)
	assert.Equal(t, "Memórias Póstumas", m.state.Result.Books[1].Title)
	assert.Contains(t, m.View(), "Dom Casmurro")
	f.AssertExpectations(t)
}

func TestModel_LanguageFailureShowsGenericError(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("A"), nil).Once()
	f.On("FetchBooks", withSeq, gutendex.Query{Languages: "pt"}).
		Return(gutendex.Listing{}, &gutendex.StatusError{URL: "x", Code: 500}).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, cmd := update(t, m, runes("L"))
	assert.Equal(t, "pt", m.state.Filter.Language)

	msgs := fetchResults(t, cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	assert.Equal(t, state.ModeError, state.ModeOf(m.state.Result))
	assert.Empty(t, m.state.Result.Books)
	assert.Contains(t, m.View(), gutendex.GenericFailureMessage)
}

func TestModel_EmptyResultsQuoteQuery(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("A"), nil).Once()
	f.On("FetchBooks", withSeq, gutendex.Query{Search: "zzzzz"}).Return(books(), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, cmd := search(t, m, "zzzzz")
	msgs := fetchResults(t, cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	view := m.View()
	assert.Equal(t, state.ModeEmpty, state.ModeOf(m.state.Result))
	assert.Contains(t, view, emptyTitle)
	assert.Contains(t, view, "zzzzz")
	assert.NotContains(t, view, errorTitle)
}

func TestModel_StaleResponseIsDiscarded(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("A"), nil).Once()
	f.On("FetchBooks", withSeq, gutendex.Query{Search: "dom"}).Return(books("Old result"), nil).Once()
	f.On("FetchBooks", withSeq, gutendex.Query{Search: "dom", Languages: "pt"}).Return(books("New result"), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, older := search(t, m, "dom")
	m, newer := update(t, m, runes("L"))

	olderMsgs := fetchResults(t, older)
	newerMsgs := fetchResults(t, newer)
	require.Len(t, olderMsgs, 1)
	require.Len(t, newerMsgs, 1)

	m, _ = update(t, m, newerMsgs[0])
	m, _ = update(t, m, olderMsgs[0])

	require.Len(t, m.state.Result.Books, 1)
	assert.Equal(t, "New result", m.state.Result.Books[0].Title)
	assert.Equal(t, 1, m.state.Discarded)
	assert.NotContains(t, m.View(), "Old result")
}

func TestModel_DebounceCommitsOnlyLatestEdit(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("A"), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, runes("do"))
	stale := m.debounceGen
	m, _ = update(t, m, runes("m"))

	m, cmd := update(t, m, debounceMsg{gen: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.state.Filter.Query)

	m, cmd = update(t, m, debounceMsg{gen: m.debounceGen})
	assert.NotNil(t, cmd)
	assert.Equal(t, "dom", m.state.Filter.Query)
	assert.True(t, m.searching, "debounced commit keeps the search bar focused")
}

func TestModel_EscapeRestoresCommittedQuery(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("A"), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, runes("abc"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, m.searching)
	assert.Equal(t, "", m.search.Value())
	assert.Equal(t, uint64(1), m.state.Seq())
}

func TestModel_NetworkErrorWithoutFetcher(t *testing.T) {
	m := newTestModel(t, nil, Options{})
	msgs := fetchResults(t, m.Init())
	require.Len(t, msgs, 1)

	failed, ok := msgs[0].(state.FetchFailed)
	require.True(t, ok)
	assert.True(t, errors.Is(failed.Err, errNoFetcher))
}

func TestModel_ThemeAndLanguagePersist(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, mock.Anything).Return(books("A"), nil)
	path := filepath.Join(t.TempDir(), "prefs.toml")

	m := settle(t, newTestModel(t, f, Options{PrefsPath: path, ThemeName: "Nightfox"}))
	m, _ = update(t, m, runes("T"))
	m, _ = update(t, m, runes("L"))

	p := prefs.Load(path)
	assert.Equal(t, "Kanagawa", p.Theme)
	assert.Equal(t, "pt", p.Language)
	assert.Equal(t, "Kanagawa", m.theme.Name)
}

func TestModel_SelectionAndDetail(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("First", "Second", "Third"), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, _ = update(t, m, runes("l"))
	assert.Equal(t, 1, m.selected)
	m, _ = update(t, m, runes("h"))
	m, _ = update(t, m, runes("h"))
	assert.Equal(t, 0, m.selected, "selection stops at the first card")

	m, _ = update(t, m, runes("l"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.showDetail)
	assert.Contains(t, m.View(), "Second")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showDetail)
}

func TestModel_PagingWithoutLinksIsIgnored(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("A"), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	_, cmd := update(t, m, runes("n"))
	assert.Nil(t, cmd)
	f.AssertNumberOfCalls(t, "FetchBooks", 1)
}

func TestModel_RefreshRefetchesPastCache(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBooks", withSeq, gutendex.Query{}).Return(books("A"), nil).Once()
	f.On("FetchBooks", withSeq, gutendex.Query{Fresh: true}).Return(books("A", "B"), nil).Once()

	m := settle(t, newTestModel(t, f, Options{}))
	m, cmd := update(t, m, runes("r"))
	assert.Equal(t, state.PhaseLoading, m.state.Result.Phase)

	msgs := fetchResults(t, cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	assert.Len(t, m.state.Result.Books, 2)
	f.AssertExpectations(t)
}
