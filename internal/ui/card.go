package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/folio/internal/gutendex"
)

// Cover indicators. Terminals cannot show the image, only whether one exists.
const (
	coverGlyph       = "▣"
	coverPlaceholder = "□"
	untitled         = "Untitled"
)

func coverIndicator(b gutendex.Book) string {
	if b.HasCover() {
		return coverGlyph
	}
	return coverPlaceholder
}

// downloadsLabel renders a download count with thousands separators.
func downloadsLabel(n int) string {
	return humanize.Comma(int64(n)) + " downloads"
}

// cardLines returns the plain text rows of a card, each at most width cells.
func cardLines(b gutendex.Book, width int) []string {
	lines := make([]string, 0, 3+cardTitleRows)
	lines = append(lines, truncate(fmt.Sprintf("%s #%d", coverIndicator(b), b.ID), width))

	title := strings.TrimSpace(b.Title)
	if title == "" {
		title = untitled
	}
	titleRows := wrap(title, width, cardTitleRows)
	for len(titleRows) < cardTitleRows {
		titleRows = append(titleRows, "")
	}
	lines = append(lines, titleRows...)
	lines = append(lines, truncate(b.AuthorLabel(), width))

	meta := downloadsLabel(b.DownloadCount)
	if langs := b.LanguageLabel(); langs != "" {
		meta = langs + " · " + meta
	}
	lines = append(lines, truncate(meta, width))
	return lines
}

// renderCard draws one book card of cardWidth x cardHeight cells.
func (m Model) renderCard(b gutendex.Book, selected bool) string {
	styles := m.theme.Styles()
	inner := cardWidth - 4 // border and padding
	lines := cardLines(b, inner)

	coverStyle := styles.FaintText
	if b.HasCover() {
		coverStyle = styles.AccentText
	}
	rendered := []string{
		coverStyle.Render(padRight(lines[0], inner)),
	}
	for _, row := range lines[1 : 1+cardTitleRows] {
		rendered = append(rendered, styles.Text.Bold(true).Render(padRight(row, inner)))
	}
	rendered = append(rendered,
		styles.MutedText.Render(padRight(lines[1+cardTitleRows], inner)),
		styles.FaintText.Render(padRight(lines[2+cardTitleRows], inner)),
	)

	style := styles.Card
	if selected {
		style = styles.CardSelected
	}
	return style.Width(cardWidth - 2).Render(strings.Join(rendered, "\n"))
}

// gridColumns returns how many cards fit side by side in width.
func gridColumns(width int) int {
	cols := (width + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		return 1
	}
	return cols
}

// firstVisibleRow keeps the selected row on screen.
func firstVisibleRow(selectedRow, visibleRows int) int {
	if visibleRows < 1 {
		visibleRows = 1
	}
	if selectedRow < visibleRows {
		return 0
	}
	return selectedRow - visibleRows + 1
}

// renderGrid lays the current books out as rows of cards.
func (m Model) renderGrid(books []gutendex.Book, width, height int) string {
	cols := gridColumns(width)
	visible := height / cardHeight
	if visible < 1 {
		visible = 1
	}
	start := firstVisibleRow(m.selected/cols, visible)

	gap := strings.Repeat(" ", cardGap)
	var rows []string
	for row := start; row < start+visible; row++ {
		first := row * cols
		if first >= len(books) {
			break
		}
		var cards []string
		for i := first; i < first+cols && i < len(books); i++ {
			if i > first {
				cards = append(cards, gap)
			}
			cards = append(cards, m.renderCard(books[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
