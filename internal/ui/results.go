package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/state"
)

const (
	loadingText = "Searching books..."
	errorTitle  = "Something went wrong."
	emptyTitle  = "No books found"
)

// EmptyStateMessage explains an empty listing. With a filter active it quotes
// the search text (or "your selection") and names the language.
func EmptyStateMessage(f state.Filter) string {
	if !f.Active() {
		return "Use the search bar and the language selector to find books."
	}
	subject := f.Query
	if subject == "" {
		subject = "your selection"
	}
	msg := fmt.Sprintf("Try a different search or language for %q", subject)
	if f.Language != "" {
		msg += " in " + languageName(f.Language)
	}
	return msg + "."
}

// renderResults draws the result area for the current display mode.
func (m Model) renderResults(width, height int) string {
	styles := m.theme.Styles()
	result := m.state.Result

	var body string
	switch state.ModeOf(result) {
	case state.ModeGrid:
		grid := m.renderGrid(result.Books, width, height)
		return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(grid)
	case state.ModeError:
		body = m.renderPanel(styles.DangerText.Render(errorTitle), result.Message, width)
	case state.ModeEmpty:
		body = m.renderPanel(styles.Text.Bold(true).Render(emptyTitle), EmptyStateMessage(m.state.Filter), width)
	default:
		body = styles.AccentText.Render(m.spinner.View()) + " " + styles.MutedText.Render(loadingText)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderPanel(title, message string, width int) string {
	styles := m.theme.Styles()
	textWidth := width - 10
	if textWidth > 60 {
		textWidth = 60
	}
	if textWidth < 10 {
		textWidth = 10
	}
	text := styles.MutedText.Width(textWidth).Align(lipgloss.Center).Render(strings.TrimSpace(message))
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, title, "", text))
}
