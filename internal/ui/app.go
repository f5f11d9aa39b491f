package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/folio/internal/gutendex"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/metrics"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/state"
)

var errNoFetcher = errors.New("no catalog client configured")

// Options configures the UI.
type Options struct {
	Context        context.Context
	Fetcher        gutendex.BookFetcher
	Filter         state.Filter // initial filter
	Languages      []string     // selector options; "" means any
	SearchDebounce time.Duration
	ThemeName      string
	PrefsPath      string
	LogPath        string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	fetcher   gutendex.BookFetcher
	languages []string
	debounce  time.Duration
	prefsPath string
	logPath   string
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Catalog state; only changed through dispatch and complete.
	state   state.State
	pending *state.Request

	// Search bar
	search      textinput.Model
	searching   bool
	debounceGen int

	spinner  spinner.Model
	selected int

	// Overlays
	showHelp        bool
	showDetail      bool
	detail          viewport.Model
	showDiagnostics bool
	diagnostics     viewport.Model
}

// New creates the model and issues the initial request for opts.Filter.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	debounce := opts.SearchDebounce
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}

	languages := opts.Languages
	if len(languages) == 0 {
		languages = []string{""}
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	filter := state.NewFilter(opts.Filter.Query, opts.Filter.Language)
	m := Model{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		languages: languages,
		debounce:  debounce,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		search:    newSearchInput(filter.Query),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.state, m.pending = state.Reduce(m.state, state.FilterChanged{Filter: filter})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.pending == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetchCmd(*m.pending))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		w, h := m.overlaySize()
		m.detail.Width, m.detail.Height = w, h
		m.diagnostics.Width, m.diagnostics.Height = w, h
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain lapse once nothing is loading; dispatch restarts it.
		if m.state.Result.Phase != state.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case debounceMsg:
		return m.handleDebounce(msg)

	case state.FetchSucceeded:
		m.complete(msg, msg.Seq)
		return m, nil

	case state.FetchFailed:
		m.complete(msg, msg.Seq)
		return m, nil

	case diagnosticsMsg:
		return m.handleDiagnostics(msg)

	case diagnosticsTickMsg:
		if !m.showDiagnostics {
			return m, nil
		}
		return m, loadDiagnosticsCmd(m.logPath)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	switch {
	case m.showHelp:
		return m.renderHelp()
	case m.showDetail:
		return m.renderDetail()
	case m.showDiagnostics:
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	resultsHeight := max(m.height-headerRows-searchRows-footerRows, 1)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearchBar(),
		m.renderResults(m.width, resultsHeight),
		m.renderFooter(),
	)
}

// dispatch runs ev through the reducer and returns the fetch it asks for.
func (m *Model) dispatch(ev state.Event) tea.Cmd {
	var req *state.Request
	m.state, req = state.Reduce(m.state, ev)
	if req == nil {
		return nil
	}
	m.selected = 0
	m.showDetail = false
	logging.For(logging.WithSeq(m.ctx, req.Seq)).WithFields(logrus.Fields{
		"query":    req.Filter.Query,
		"language": req.Filter.Language,
		"page":     req.Page,
	}).Debug("catalog request issued")
	return tea.Batch(m.spinner.Tick, m.fetchCmd(*req))
}

// complete feeds a fetch completion back into the reducer.
func (m *Model) complete(ev state.Event, seq uint64) {
	discarded := m.state.Discarded
	m.state, _ = state.Reduce(m.state, ev)
	if m.state.Discarded == discarded {
		m.selected = 0
		return
	}
	metrics.SupersededTotal.Inc()
	logging.For(logging.WithSeq(m.ctx, seq)).
		WithField("latest", m.state.Seq()).
		Debug("superseded catalog response discarded")
}

// fetchCmd performs req off the update loop.
func (m Model) fetchCmd(req state.Request) tea.Cmd {
	fetcher := m.fetcher
	ctx := logging.WithSeq(m.ctx, req.Seq)
	return func() tea.Msg {
		if fetcher == nil {
			return state.FetchFailed{Seq: req.Seq, Err: errNoFetcher}
		}
		listing, err := fetcher.FetchBooks(ctx, req.Query)
		if err != nil {
			return state.FetchFailed{Seq: req.Seq, Err: err}
		}
		return state.FetchSucceeded{Seq: req.Seq, Listing: listing}
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.showDetail {
		if key.Matches(msg, m.keys.Escape, m.keys.Open, m.keys.Quit) {
			m.showDetail = false
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	if m.showDiagnostics {
		if key.Matches(msg, m.keys.Escape, m.keys.Diagnostics, m.keys.Quit) {
			m.showDiagnostics = false
			return m, nil
		}
		var cmd tea.Cmd
		m.diagnostics, cmd = m.diagnostics.Update(msg)
		return m, cmd
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		return m, m.openDiagnostics()

	case key.Matches(msg, m.keys.FocusSearch):
		return m, m.focusSearch()

	case key.Matches(msg, m.keys.NextLanguage):
		return m, m.changeLanguage(1)

	case key.Matches(msg, m.keys.PrevLanguage):
		return m, m.changeLanguage(-1)

	case key.Matches(msg, m.keys.ClearFilter):
		m.search.SetValue("")
		cmd := m.dispatch(state.ClearFilter{})
		m.savePrefs()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		return m, m.dispatch(state.Refresh{})

	case key.Matches(msg, m.keys.NextPage):
		return m, m.dispatch(state.PageRequested{Direction: state.PageNext})

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.dispatch(state.PageRequested{Direction: state.PagePrevious})

	case key.Matches(msg, m.keys.Open):
		m.openDetail()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-gridColumns(m.width))
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(gridColumns(m.width))
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	n := len(m.state.Result.Books)
	if n == 0 {
		m.selected = 0
		return
	}
	next := m.selected + delta
	if next < 0 || next >= n {
		return
	}
	m.selected = next
}

// changeLanguage steps through the configured languages and refetches.
func (m *Model) changeLanguage(step int) tea.Cmd {
	lang := cycleLanguage(m.languages, m.state.Filter.Language, step)
	cmd := m.dispatch(state.LanguageChanged{Language: lang})
	m.savePrefs()
	return cmd
}

func (m Model) savePrefs() {
	if strings.TrimSpace(m.prefsPath) == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Language: m.state.Filter.Language}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logrus.WithError(err).Warn("save prefs failed")
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx ends.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
