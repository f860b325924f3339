// Package render formats validation results for plain console output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"svdcheck/src/diag"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lineColStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Summary renders a severity tally plus one row per finding, in ascending
// line order, for local (non-CI) runs.
func Summary(svdPath string, report *diag.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("SVDConv results for %s", svdPath)))
	b.WriteString("\n\n")
	b.WriteString(Tally(report.Stats))
	b.WriteString("\n")

	messages := report.Messages()
	if len(messages) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	for _, msg := range messages {
		location := "file"
		if msg.Line > 0 {
			location = fmt.Sprintf("line %d", msg.Line)
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
			severityBadge(msg.Level),
			msg.Code,
			lineColStyle.Render(location),
			msg.Text,
		))
	}

	return b.String()
}

// Tally renders the one-line severity count summary.
func Tally(stats diag.Stats) string {
	if stats.Total() == 0 {
		return okStyle.Render("No findings reported.")
	}

	parts := []string{
		errorStyle.Render(fmt.Sprintf("%d errors", stats.Errors)),
		warningStyle.Render(fmt.Sprintf("%d warnings", stats.Warnings)),
		noteStyle.Render(fmt.Sprintf("%d notes", stats.Notes)),
	}
	return strings.Join(parts, "  ")
}

func severityBadge(level diag.Level) string {
	switch level {
	case diag.LevelError:
		return errorStyle.Render("ERROR")
	case diag.LevelWarning:
		return warningStyle.Render("WARN ")
	default:
		return noteStyle.Render("NOTE ")
	}
}
