package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/state"
)

const searchPlaceholder = "Search by title or author..."

// debounceMsg fires after the search text has been idle for the debounce
// interval. gen identifies the edit that scheduled it.
type debounceMsg struct{ gen int }

func newSearchInput(initial string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = searchPlaceholder
	ti.CharLimit = 200
	ti.SetValue(initial)
	return ti
}

func debounceCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen}
	})
}

// focusSearch moves keyboard input to the search bar.
func (m *Model) focusSearch() tea.Cmd {
	m.searching = true
	m.search.CursorEnd()
	return m.search.Focus()
}

// blurSearch leaves the search bar and cancels any pending debounce.
func (m *Model) blurSearch() {
	m.searching = false
	m.debounceGen++
	m.search.Blur()
}

// handleSearchKey processes input while the search bar has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.blurSearch()
		m.search.SetValue(m.state.Filter.Query)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.blurSearch()
		return m, m.commitQuery()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.debounceGen++
	return m, tea.Batch(cmd, debounceCmd(m.debounce, m.debounceGen))
}

// handleDebounce commits the query when no edit followed the one that
// scheduled msg.
func (m Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	if !m.searching || msg.gen != m.debounceGen {
		return m, nil
	}
	return m, m.commitQuery()
}

// commitQuery issues a fetch when the typed text differs from the filter.
func (m *Model) commitQuery() tea.Cmd {
	query := strings.TrimSpace(m.search.Value())
	if query == m.state.Filter.Query {
		return nil
	}
	return m.dispatch(state.QueryChanged{Query: query})
}

// renderSearchBar renders the bordered search input.
func (m Model) renderSearchBar() string {
	border := m.theme.BorderMuted
	if m.searching {
		border = m.theme.BorderFocus
	}
	m.search.Width = max(m.width-8, 10)
	m.search.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	m.search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(m.width - 2).
		Render(m.search.View())
}
