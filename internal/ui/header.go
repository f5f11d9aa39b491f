package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/dustin/go-humanize"

	"github.com/five82/folio/internal/state"
)

// renderHeader renders the top bar: logo, active filter and fetch phase.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("folio", styles.Logo)}

	lang := languageName(m.state.Filter.Language)
	if compact {
		parts = append(parts, bg.Render(lang, styles.Text))
	} else {
		parts = append(parts, bg.Render("Language:", styles.MutedText)+bg.Space()+bg.Render(lang, styles.Text))
	}
	if q := m.state.Filter.Query; q != "" {
		parts = append(parts, bg.Render("Search:", styles.MutedText)+bg.Space()+
			bg.Render(truncate(fmt.Sprintf("%q", q), 30), styles.AccentText))
	}

	switch m.state.Result.Phase {
	case state.PhaseLoading:
		parts = append(parts, bg.Render("● loading", styles.WarningText))
	case state.PhaseError:
		parts = append(parts, bg.Render("● error", styles.DangerText))
	case state.PhaseSuccess:
		parts = append(parts, bg.Render("● ready", styles.SuccessText))
	}

	if !compact {
		parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// StatusSummary describes the listing on screen, e.g. "Page 2 · 1,234 books".
func StatusSummary(s state.State) string {
	if s.Result.Phase != state.PhaseSuccess {
		return ""
	}
	parts := []string{fmt.Sprintf("Page %d", max(s.Page, 1))}
	parts = append(parts, humanize.Comma(int64(s.Result.Count))+" books")
	if len(s.Result.Books) > 0 {
		parts = append(parts, fmt.Sprintf("%d shown", len(s.Result.Books)))
	}
	var nav []string
	if s.HasPrevious() {
		nav = append(nav, "◀ prev")
	}
	if s.HasNext() {
		nav = append(nav, "next ▶")
	}
	if len(nav) > 0 {
		parts = append(parts, strings.Join(nav, " "))
	}
	return strings.Join(parts, " · ")
}

// renderFooter renders the status line with the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styles.WarningText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	keys := h.ShortHelpView(m.keys.ShortHelp())

	summary := StatusSummary(m.state)
	if summary == "" {
		return styles.Footer.Width(m.width).Render(keys)
	}
	return styles.Footer.Width(m.width).Render(styles.Text.Render(summary) + "   " + keys)
}
