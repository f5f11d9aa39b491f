package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/five82/folio/internal/gutendex"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/ui"
)

const onceTitleWidth = 48

// RunOnce performs a single fetch for filter through the same state machine
// the TUI uses and writes the outcome to w. An Error result is returned as an
// error so the caller can exit non-zero.
func RunOnce(ctx context.Context, fetcher gutendex.BookFetcher, filter state.Filter, w io.Writer) error {
	s, req := state.Reduce(state.State{}, state.FilterChanged{Filter: filter})
	if req == nil {
		return errors.New("no request issued")
	}

	listing, err := fetcher.FetchBooks(logging.WithSeq(ctx, req.Seq), req.Query)
	if err != nil {
		s, _ = state.Reduce(s, state.FetchFailed{Seq: req.Seq, Err: err})
	} else {
		s, _ = state.Reduce(s, state.FetchSucceeded{Seq: req.Seq, Listing: listing})
	}

	switch state.ModeOf(s.Result) {
	case state.ModeError:
		return fmt.Errorf("fetch books: %s", s.Result.Message)
	case state.ModeEmpty:
		_, err := fmt.Fprintf(w, "No books found. %s\n", ui.EmptyStateMessage(s.Filter))
		return err
	case state.ModeGrid:
		if _, err := fmt.Fprintln(w, renderTable(s.Result.Books)); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, ui.StatusSummary(s))
		return err
	}
	return nil
}

func renderTable(books []gutendex.Book) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	rows := make([][]string, 0, len(books))
	for _, b := range books {
		cover := "no"
		if b.HasCover() {
			cover = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(b.ID),
			runewidth.Truncate(b.Title, onceTitleWidth, "…"),
			runewidth.Truncate(b.AuthorLabel(), 32, "…"),
			b.LanguageLabel(),
			humanize.Comma(int64(b.DownloadCount)),
			cover,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "AUTHOR", "LANG", "DOWNLOADS", "COVER").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0 || col == 4:
				return number
			default:
				return cell
			}
		}).
		String()
}
