package gutendex

import (
	"testing"
)

func intPtr(v int) *int { return &v }

func TestBookAuthorLabel(t *testing.T) {
	cases := []struct {
		name string
		book Book
		want string
	}{
		{"no authors", Book{}, UnknownAuthor},
		{"blank name", Book{Authors: []Person{{Name: "  "}}}, UnknownAuthor},
		{"first author", Book{Authors: []Person{{Name: "Austen, Jane"}, {Name: "Other"}}}, "Austen, Jane"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.book.AuthorLabel(); got != tc.want {
				t.Fatalf("AuthorLabel = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBookCoverURL(t *testing.T) {
	if got := (Book{}).CoverURL(); got != "" {
		t.Fatalf("CoverURL without formats = %q, want empty", got)
	}
	noImage := Book{Formats: map[string]string{"text/html": "https://x/h", "application/epub+zip": "https://x/e"}}
	if noImage.HasCover() {
		t.Fatalf("HasCover = true for book without image formats")
	}
	jpeg := Book{Formats: map[string]string{"image/png": "https://x/p", "image/jpeg": "https://x/j"}}
	if got := jpeg.CoverURL(); got != "https://x/j" {
		t.Fatalf("CoverURL = %q, want jpeg", got)
	}
	png := Book{Formats: map[string]string{"image/png": "https://x/p"}}
	if got := png.CoverURL(); got != "https://x/p" {
		t.Fatalf("CoverURL = %q, want png fallback", got)
	}
}

func TestBookLanguageLabel(t *testing.T) {
	b := Book{Languages: []string{"en", " ", "fr"}}
	if got := b.LanguageLabel(); got != "EN, FR" {
		t.Fatalf("LanguageLabel = %q, want %q", got, "EN, FR")
	}
}

func TestSortedFormats(t *testing.T) {
	b := Book{Formats: map[string]string{"text/plain": "p", "application/epub+zip": "e", "image/jpeg": "j"}}
	got := b.SortedFormats()
	if len(got) != 3 || got[0].MIME != "application/epub+zip" || got[2].MIME != "text/plain" {
		t.Fatalf("SortedFormats = %#v, want ordered by MIME", got)
	}
}

func TestPersonLifespan(t *testing.T) {
	cases := []struct {
		p    Person
		want string
	}{
		{Person{}, ""},
		{Person{BirthYear: intPtr(1812), DeathYear: intPtr(1870)}, "1812-1870"},
		{Person{BirthYear: intPtr(1950)}, "1950-"},
		{Person{DeathYear: intPtr(1600)}, "-1600"},
		{Person{BirthYear: intPtr(-69), DeathYear: intPtr(-8)}, "69 BCE-8 BCE"},
	}
	for _, tc := range cases {
		if got := tc.p.Lifespan(); got != tc.want {
			t.Fatalf("Lifespan(%#v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestListingLinks(t *testing.T) {
	next := " https://gutendex.com/books/?page=2 "
	l := Listing{Next: &next}
	if l.NextURL() != "https://gutendex.com/books/?page=2" {
		t.Fatalf("NextURL = %q", l.NextURL())
	}
	if l.PreviousURL() != "" {
		t.Fatalf("PreviousURL = %q, want empty", l.PreviousURL())
	}
}

func TestSanitizeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Pride & Prejudice", "Pride & Prejudice"},
		{"<b>Bold</b> title", "Bold title"},
		{"Line\r\nbreak", "Line break"},
		{"Escape\x1b[31m red", "Escape [31m red"},
		{"  spaced   out  ", "spaced out"},
		{"Frankenstein; Or, The Modern Prometheus", "Frankenstein; Or, The Modern Prometheus"},
	}
	for _, tc := range cases {
		if got := SanitizeText(tc.in); got != tc.want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeListing_SanitizesAndDefaults(t *testing.T) {
	listing, err := DecodeListing([]byte(`{"results": [{"id": 1, "title": "A <i>B</i>", "authors": [{"name": "X\ny"}]}]}`))
	if err != nil {
		t.Fatalf("DecodeListing returned error: %v", err)
	}
	if listing.Results[0].Title != "A B" || listing.Results[0].Authors[0].Name != "X y" {
		t.Fatalf("book = %#v, want sanitized text", listing.Results[0])
	}

	if _, err := DecodeListing([]byte(`{"results": [{"title": "missing id"}]}`)); err == nil {
		t.Fatalf("DecodeListing accepted result without id")
	}
	if _, err := DecodeListing(nil); err == nil {
		t.Fatalf("DecodeListing accepted empty body")
	}
}
