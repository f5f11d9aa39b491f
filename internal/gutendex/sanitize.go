package gutendex

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup and terminal control characters from catalog text
// and collapses runs of whitespace.
func SanitizeText(value string) string {
	if value == "" {
		return ""
	}
	// StrictPolicy escapes entities on output; undo that so "&" stays "&".
	cleaned := html.UnescapeString(textPolicy.Sanitize(value))
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

func sanitizeBook(b Book) Book {
	b.Title = SanitizeText(b.Title)
	b.Authors = sanitizePeople(b.Authors)
	b.Translators = sanitizePeople(b.Translators)
	for i, subject := range b.Subjects {
		b.Subjects[i] = SanitizeText(subject)
	}
	for i, shelf := range b.Bookshelves {
		b.Bookshelves[i] = SanitizeText(shelf)
	}
	return b
}

func sanitizePeople(people []Person) []Person {
	for i := range people {
		people[i].Name = SanitizeText(people[i].Name)
	}
	return people
}
