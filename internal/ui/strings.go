package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// truncate shortens value to at most width terminal cells, ending with an
// ellipsis when something was cut.
func truncate(value string, width int) string {
	value = strings.TrimSpace(value)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, ellipsis)
}

// wrap breaks value into at most maxLines lines of width cells. The last line
// is truncated when the text does not fit.
func wrap(value string, width, maxLines int) []string {
	words := strings.Fields(value)
	if len(words) == 0 || width <= 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	var cur strings.Builder
	for i, w := range words {
		switch {
		case cur.Len() == 0:
			cur.WriteString(w)
		case runewidth.StringWidth(cur.String())+1+runewidth.StringWidth(w) <= width:
			cur.WriteString(" ")
			cur.WriteString(w)
		default:
			if len(lines) == maxLines-1 {
				rest := cur.String() + " " + strings.Join(words[i:], " ")
				return append(lines, truncate(rest, width))
			}
			lines = append(lines, truncate(cur.String(), width))
			cur.Reset()
			cur.WriteString(w)
		}
	}
	return append(lines, truncate(cur.String(), width))
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
