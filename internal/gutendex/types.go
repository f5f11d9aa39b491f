package gutendex

import (
	"sort"
	"strconv"
	"strings"
)

// UnknownAuthor is shown when a book carries no usable author name.
const UnknownAuthor = "Unknown author"

// Listing mirrors a page of the /books endpoint.
type Listing struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Book  `json:"results"`
}

// NextURL returns the next page link or an empty string.
func (l Listing) NextURL() string {
	if l.Next == nil {
		return ""
	}
	return strings.TrimSpace(*l.Next)
}

// PreviousURL returns the previous page link or an empty string.
func (l Listing) PreviousURL() string {
	if l.Previous == nil {
		return ""
	}
	return strings.TrimSpace(*l.Previous)
}

// Book describes a catalog entry as returned by the API.
type Book struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Authors       []Person          `json:"authors"`
	Translators   []Person          `json:"translators"`
	Subjects      []string          `json:"subjects"`
	Bookshelves   []string          `json:"bookshelves"`
	Languages     []string          `json:"languages"`
	Copyright     *bool             `json:"copyright"`
	MediaType     string            `json:"media_type"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
}

// Person is an author or translator.
type Person struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// AuthorLabel returns the first author's name, falling back to UnknownAuthor.
func (b Book) AuthorLabel() string {
	if len(b.Authors) == 0 {
		return UnknownAuthor
	}
	if name := strings.TrimSpace(b.Authors[0].Name); name != "" {
		return name
	}
	return UnknownAuthor
}

// CoverURL returns the cover image link, preferring image/jpeg over any other
// image format. An empty string means the book has no cover.
func (b Book) CoverURL() string {
	if url := strings.TrimSpace(b.Formats["image/jpeg"]); url != "" {
		return url
	}
	mimes := make([]string, 0, len(b.Formats))
	for mime := range b.Formats {
		if strings.HasPrefix(mime, "image/") {
			mimes = append(mimes, mime)
		}
	}
	sort.Strings(mimes)
	for _, mime := range mimes {
		if url := strings.TrimSpace(b.Formats[mime]); url != "" {
			return url
		}
	}
	return ""
}

// HasCover reports whether an image format is available.
func (b Book) HasCover() bool {
	return b.CoverURL() != ""
}

// LanguageLabel joins the language codes upper-cased, e.g. "EN, FR".
func (b Book) LanguageLabel() string {
	codes := make([]string, 0, len(b.Languages))
	for _, code := range b.Languages {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, strings.ToUpper(code))
		}
	}
	return strings.Join(codes, ", ")
}

// FormatEntry is a single MIME type and its download link.
type FormatEntry struct {
	MIME string
	URL  string
}

// SortedFormats returns the formats ordered by MIME type.
func (b Book) SortedFormats() []FormatEntry {
	if len(b.Formats) == 0 {
		return nil
	}
	out := make([]FormatEntry, 0, len(b.Formats))
	for mime, url := range b.Formats {
		out = append(out, FormatEntry{MIME: mime, URL: url})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MIME < out[j].MIME })
	return out
}

// Lifespan renders the birth/death years, e.g. "1812-1870", or "" when unknown.
func (p Person) Lifespan() string {
	switch {
	case p.BirthYear == nil && p.DeathYear == nil:
		return ""
	case p.DeathYear == nil:
		return itoa(*p.BirthYear) + "-"
	case p.BirthYear == nil:
		return "-" + itoa(*p.DeathYear)
	default:
		return itoa(*p.BirthYear) + "-" + itoa(*p.DeathYear)
	}
}

func itoa(year int) string {
	// Negative years are BCE in the catalog.
	if year < 0 {
		return strconv.Itoa(-year) + " BCE"
	}
	return strconv.Itoa(year)
}
