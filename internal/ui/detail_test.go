package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/folio/internal/gutendex"
	"github.com/five82/folio/internal/logtail"
)

func intPtr(v int) *int { return &v }

func TestDetailLines(t *testing.T) {
	free := false
	b := gutendex.Book{
		ID:          2600,
		Title:       "War and Peace",
		Authors:     []gutendex.Person{{Name: "Tolstoy, Leo", BirthYear: intPtr(1828), DeathYear: intPtr(1910)}},
		Translators: []gutendex.Person{{Name: "Maude, Louise"}},
		Languages:   []string{"en"},
		Copyright:   &free,
		Subjects:    []string{"Historical fiction", "Napoleonic Wars"},
		Formats: map[string]string{
			"text/html":  "https://example.org/2600.html",
			"image/jpeg": "https://example.org/2600.jpg",
		},
		DownloadCount: 40123,
	}
	text := strings.Join(detailLines(b), "\n")

	assert.Contains(t, text, "Tolstoy, Leo (1828-1910)")
	assert.Contains(t, text, "Maude, Louise")
	assert.Contains(t, text, "English (en)")
	assert.Contains(t, text, "public domain")
	assert.Contains(t, text, "40,123")
	assert.Contains(t, text, "Napoleonic Wars")
	assert.Contains(t, text, "image/jpeg  https://example.org/2600.jpg")
	assert.Less(t, strings.Index(text, "image/jpeg"), strings.Index(text, "text/html"))
}

func TestDetailLines_Fallbacks(t *testing.T) {
	text := strings.Join(detailLines(gutendex.Book{}), "\n")
	assert.Contains(t, text, untitled)
	assert.Contains(t, text, gutendex.UnknownAuthor)
	assert.Contains(t, text, "unknown")
}

func TestFormatLogLine(t *testing.T) {
	styles := GetTheme("Slate").Styles()
	e := logtail.Parse(`time="2026-10-19 10:00:05" level=warning msg="catalog fetch failed" seq=4`)
	out := formatLogLine(e, styles, 80)

	assert.Contains(t, out, "10:00:05")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "catalog fetch failed seq=4")
}
