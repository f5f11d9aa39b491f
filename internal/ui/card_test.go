package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/folio/internal/gutendex"
)

func TestCardLines_Fallbacks(t *testing.T) {
	lines := cardLines(gutendex.Book{ID: 42}, 30)
	require.Len(t, lines, 3+cardTitleRows)

	assert.Equal(t, coverPlaceholder+" #42", lines[0])
	assert.Equal(t, untitled, lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, gutendex.UnknownAuthor, lines[3])
	assert.Equal(t, "0 downloads", lines[4])
}

func TestCardLines_BlankAuthorName(t *testing.T) {
	b := gutendex.Book{Authors: []gutendex.Person{{Name: "  "}}}
	assert.Equal(t, gutendex.UnknownAuthor, cardLines(b, 30)[3])
}

func TestCardLines_FullBook(t *testing.T) {
	b := gutendex.Book{
		ID:            55752,
		Title:         "Memórias Póstumas de Brás Cubas, a very long edition title",
		Authors:       []gutendex.Person{{Name: "Machado de Assis"}},
		Languages:     []string{"pt", "en"},
		Formats:       map[string]string{"image/jpeg": "https://example.org/cover.jpg"},
		DownloadCount: 12345,
	}
	lines := cardLines(b, 30)

	assert.True(t, strings.HasPrefix(lines[0], coverGlyph))
	assert.Equal(t, "Machado de Assis", lines[3])
	assert.Equal(t, "PT, EN · 12,345 downloads", lines[4])
	for _, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 30, "line %q too wide", line)
	}
	assert.True(t, strings.HasSuffix(lines[2], ellipsis))
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 1, gridColumns(10))
	assert.Equal(t, 1, gridColumns(cardWidth))
	assert.Equal(t, 2, gridColumns(2*cardWidth+cardGap))
	assert.Equal(t, 3, gridColumns(120))
}

func TestFirstVisibleRow(t *testing.T) {
	assert.Equal(t, 0, firstVisibleRow(0, 3))
	assert.Equal(t, 0, firstVisibleRow(2, 3))
	assert.Equal(t, 1, firstVisibleRow(3, 3))
	assert.Equal(t, 5, firstVisibleRow(5, 0))
}

func TestRenderCard_FixedSize(t *testing.T) {
	m := New(Options{})
	out := m.renderCard(gutendex.Book{ID: 1, Title: "Emma"}, false)
	rows := strings.Split(out, "\n")

	assert.Len(t, rows, cardHeight)
	for _, row := range rows {
		assert.Equal(t, cardWidth, lipgloss.Width(row))
	}
}
