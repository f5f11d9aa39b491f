package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/logtail"
)

type diagnosticsMsg struct {
	lines []string
	err   error
}

type diagnosticsTickMsg struct{}

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return diagnosticsMsg{}
		}
		lines, err := logtail.Read(path, diagnosticsLines)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

func diagnosticsTickCmd() tea.Cmd {
	return tea.Tick(diagnosticsRefreshTick, func(time.Time) tea.Msg {
		return diagnosticsTickMsg{}
	})
}

// openDiagnostics shows the tail of folio's log file.
func (m *Model) openDiagnostics() tea.Cmd {
	w, h := m.overlaySize()
	m.diagnostics = viewport.New(w, h)
	m.diagnostics.SetContent("Reading log...")
	m.showDiagnostics = true
	return loadDiagnosticsCmd(m.logPath)
}

func (m Model) handleDiagnostics(msg diagnosticsMsg) (tea.Model, tea.Cmd) {
	if !m.showDiagnostics {
		return m, nil
	}
	atBottom := m.diagnostics.AtBottom()
	m.diagnostics.SetContent(m.formatDiagnostics(msg))
	if atBottom {
		m.diagnostics.GotoBottom()
	}
	return m, diagnosticsTickCmd()
}

func (m Model) formatDiagnostics(msg diagnosticsMsg) string {
	styles := m.theme.Styles()
	switch {
	case msg.err != nil:
		return styles.DangerText.Render(msg.err.Error())
	case strings.TrimSpace(m.logPath) == "":
		return styles.MutedText.Render("Logging to a file is disabled.")
	case len(msg.lines) == 0:
		return styles.MutedText.Render("Log is empty.")
	}

	width := m.diagnostics.Width
	out := make([]string, 0, len(msg.lines))
	for _, line := range msg.lines {
		out = append(out, formatLogLine(logtail.Parse(line), styles, width))
	}
	return strings.Join(out, "\n")
}

func formatLogLine(e logtail.Entry, styles Styles, width int) string {
	if e.Level == logtail.LevelUnknown {
		return styles.Text.Render(truncate(e.Message, width))
	}
	level := strings.ToUpper(string(e.Level))
	if len(level) > 4 {
		level = level[:4]
	}
	var fields []string
	for _, f := range e.Fields {
		fields = append(fields, f.Key+"="+f.Value)
	}
	head := fmt.Sprintf("%s %-4s ", timeOfDay(e.Time), level)
	rest := truncate(strings.TrimSpace(e.Message+" "+strings.Join(fields, " ")), max(width-len(head), 1))
	return styles.FaintText.Render(head[:9]) +
		styles.LevelStyle(string(e.Level)).Render(head[9:]) +
		styles.Text.Render(rest)
}

// timeOfDay keeps the clock part of a logged timestamp, padded to 8 cells.
func timeOfDay(ts string) string {
	if i := strings.LastIndex(ts, " "); i >= 0 {
		ts = ts[i+1:]
	}
	if len(ts) > 8 {
		ts = ts[:8]
	}
	return fmt.Sprintf("%-8s", ts)
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Diagnostics") + "  " +
		styles.FaintText.Render(truncate(m.logPath, 60))
	stats := styles.MutedText.Render(fmt.Sprintf("requests issued %d · superseded responses %d",
		m.state.Seq(), m.state.Discarded))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Info)).
		Padding(0, 1)
	return m.overlay(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, stats, "", m.diagnostics.View())))
}
