package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/folio/internal/gutendex"
)

// detailLines lays out every field of b as "label  value" rows.
func detailLines(b gutendex.Book) []string {
	var lines []string
	add := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		lines = append(lines, fmt.Sprintf("%-12s %s", label, value))
	}
	addList := func(label string, values []string) {
		if len(values) == 0 {
			add(label, "")
			return
		}
		for i, v := range values {
			lines = append(lines, fmt.Sprintf("%-12s %s", ternary(i == 0, label, ""), v))
		}
	}

	title := strings.TrimSpace(b.Title)
	if title == "" {
		title = untitled
	}
	lines = append(lines, title, "")

	if len(b.Authors) == 0 {
		add("Author", gutendex.UnknownAuthor)
	} else {
		addList("Authors", people(b.Authors))
	}
	if len(b.Translators) > 0 {
		addList("Translators", people(b.Translators))
	}

	langs := make([]string, 0, len(b.Languages))
	for _, code := range b.Languages {
		langs = append(langs, fmt.Sprintf("%s (%s)", languageName(code), code))
	}
	add("Languages", strings.Join(langs, ", "))
	add("Downloads", humanize.Comma(int64(b.DownloadCount)))
	add("Copyright", copyrightLabel(b.Copyright))
	add("Media type", b.MediaType)
	add("Cover", ternary(b.HasCover(), b.CoverURL(), "none"))
	add("Gutenberg", fmt.Sprintf("#%d", b.ID))

	lines = append(lines, "")
	addList("Subjects", b.Subjects)
	addList("Bookshelves", b.Bookshelves)

	lines = append(lines, "")
	formats := b.SortedFormats()
	entries := make([]string, 0, len(formats))
	for _, f := range formats {
		entries = append(entries, f.MIME+"  "+f.URL)
	}
	addList("Formats", entries)
	return lines
}

func people(ps []gutendex.Person) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = gutendex.UnknownAuthor
		}
		if span := p.Lifespan(); span != "" {
			name += " (" + span + ")"
		}
		out = append(out, name)
	}
	return out
}

func copyrightLabel(c *bool) string {
	switch {
	case c == nil:
		return "unknown"
	case *c:
		return "yes"
	default:
		return "public domain"
	}
}

// overlaySize returns the viewport size used by the detail and diagnostics
// overlays.
func (m Model) overlaySize() (int, int) {
	w := min(m.width-6, 100)
	h := m.height - 6
	return max(w, 20), max(h, 3)
}

// openDetail shows the selected book, if any.
func (m *Model) openDetail() {
	books := m.state.Result.Books
	if m.selected < 0 || m.selected >= len(books) {
		return
	}
	w, h := m.overlaySize()
	m.detail = viewport.New(w, h)
	m.detail.SetContent(strings.Join(detailLines(books[m.selected]), "\n"))
	m.showDetail = true
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1)
	hint := styles.FaintText.Render(fmt.Sprintf("esc close · j/k scroll · %3.f%%", m.detail.ScrollPercent()*100))
	return m.overlay(box.Render(lipgloss.JoinVertical(lipgloss.Left, m.detail.View(), hint)))
}
