// Package tui provides the terminal user interface for triaging SVDConv
// findings locally before they are pushed to a pull request check run.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"svdcheck/src/diag"
)

// Styles for the TUI
var (
	// Header style - bold and visually distinct
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).  // Bright blue
			Background(lipgloss.Color("236")). // Dark gray
			Padding(0, 1)

	// Selected row style
	selectedStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Normal row style
	normalStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Border/divider style for split view
	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	// Detail panel header style
	detailHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10")). // Bright green
				Padding(0, 1)

	// Severity colors
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))            // Orange
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))            // Gray

	// Column widths
	severityWidth = 10
	codeWidth     = 8
	lineWidth     = 8
)

// TriageModel is the Bubble Tea model for the finding triage TUI.
// It displays parsed SVDConv findings in a split-view layout:
// - Top 1/4: Scrollable list of findings sorted by source line
// - Bottom 3/4: Detail view for the selected finding
// Pressing "r" toggles a viewport showing the raw SVDConv output.
type TriageModel struct {
	svdPath        string
	items          []Item // Findings sorted ascending by line
	cursor         int    // Currently selected row
	listScroll     int    // Scroll offset for list view
	detailScroll   int    // Scroll offset for detail view
	terminalWidth  int
	terminalHeight int

	showRaw bool           // Raw output viewport visible
	rawView viewport.Model // Scrollable raw SVDConv output
	raw     string         // ANSI-stripped raw output
}

// NewTriageModel creates a TriageModel from a parsed report and the raw tool
// output. Findings are shown in ascending line order.
func NewTriageModel(svdPath string, report *diag.Report, rawOutput string) TriageModel {
	var items []Item
	for _, msg := range report.Messages() {
		items = append(items, Item{Message: msg})
	}

	return TriageModel{
		svdPath: svdPath,
		items:   items,
		raw:     StripANSI(rawOutput),
		rawView: viewport.New(0, 0),
	}
}

// Start runs the triage TUI in the alternate screen until the user quits.
func Start(svdPath string, report *diag.Report, rawOutput string) error {
	p := tea.NewProgram(NewTriageModel(svdPath, report, rawOutput), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model. Required by tea.Model interface.
func (m TriageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m TriageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.rawView.Width = msg.Width
		m.rawView.Height = msg.Height - 3
		m.rawView.SetContent(m.raw)

	case tea.KeyMsg:
		listHeight := (m.terminalHeight - 8) / 4
		if listHeight < 2 {
			listHeight = 2
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "r", "tab":
			m.showRaw = !m.showRaw
			return m, nil
		}

		// Raw viewport owns navigation keys while visible
		if m.showRaw {
			var cmd tea.Cmd
			m.rawView, cmd = m.rawView.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.listScroll {
					m.listScroll = m.cursor
				}
				m.detailScroll = 0
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				if m.cursor >= m.listScroll+listHeight {
					m.listScroll = m.cursor - listHeight + 1
				}
				m.detailScroll = 0
			}
		case "pgup", "b":
			m.cursor = max(0, m.cursor-10)
			m.listScroll = max(0, m.cursor-listHeight/2)
			m.detailScroll = 0
		case "pgdown", "f", " ":
			m.cursor = min(len(m.items)-1, m.cursor+10)
			m.listScroll = max(0, min(m.cursor-listHeight/2, len(m.items)-listHeight))
			m.detailScroll = 0
		case "home", "g":
			m.cursor = 0
			m.listScroll = 0
			m.detailScroll = 0
		case "end", "G":
			m.cursor = len(m.items) - 1
			m.listScroll = max(0, len(m.items)-listHeight)
			m.detailScroll = 0

		// Scroll detail view independently
		case "d":
			m.detailScroll++
		case "u":
			if m.detailScroll > 0 {
				m.detailScroll--
			}
		}
	}

	return m, nil
}

// View renders the TUI display with split-view layout.
func (m TriageModel) View() string {
	if m.terminalHeight == 0 {
		return "Initializing..."
	}

	if m.showRaw {
		title := lipgloss.NewStyle().Bold(true).Render("SVDConv raw output - " + m.svdPath)
		help := lipgloss.NewStyle().Faint(true).Render("↑/↓ scroll • r back to findings • q quit")
		return title + "\n" + m.rawView.View() + "\n" + help
	}

	if len(m.items) == 0 {
		return "No findings reported.\n"
	}

	var b strings.Builder

	// UI overhead: title (1) + header (1) + divider (1) + help (1) = 4 lines
	availableHeight := m.terminalHeight - 4
	if availableHeight < 8 {
		availableHeight = 8
	}
	listHeight := availableHeight / 4
	if listHeight < 2 {
		listHeight = 2
	}
	detailHeight := availableHeight - listHeight

	// Title
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("svdcheck - SVDConv finding triage: " + m.svdPath))
	b.WriteString("\n")

	// Header for list
	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		severityWidth, "Severity",
		codeWidth, "Code",
		lineWidth, "Line",
		"Message",
	)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	// Render visible list items
	listLines := m.renderList()
	visibleStart := m.listScroll
	visibleEnd := min(visibleStart+listHeight, len(listLines))
	for i := visibleStart; i < visibleEnd; i++ {
		b.WriteString(listLines[i])
		b.WriteString("\n")
	}
	for i := visibleEnd - visibleStart; i < listHeight; i++ {
		b.WriteString("\n")
	}

	// Divider
	divider := strings.Repeat("─", m.terminalWidth)
	b.WriteString(dividerStyle.Render(divider))
	b.WriteString("\n")

	// Render visible detail lines
	detailLines := m.renderDetail()
	detailStart := m.detailScroll
	detailEnd := min(detailStart+detailHeight, len(detailLines))
	for i := detailStart; i < detailEnd; i++ {
		b.WriteString(detailLines[i])
		b.WriteString("\n")
	}
	for i := detailEnd - detailStart; i < detailHeight; i++ {
		b.WriteString("\n")
	}

	// Help text
	helpText := "↑/↓ navigate list • d/u scroll detail • r raw output • g/G top/bottom • q quit"
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(helpText))

	return b.String()
}

// renderList generates the finding list lines
func (m TriageModel) renderList() []string {
	var lines []string

	fixedWidth := severityWidth + codeWidth + lineWidth + 8
	messageWidth := m.terminalWidth - fixedWidth - 5
	if messageWidth < 40 {
		messageWidth = 40
	}

	for i, item := range m.items {
		row := fmt.Sprintf("%s %-*s %-*s %s",
			severityCell(item.Message.Level),
			codeWidth, item.Message.Code,
			lineWidth, item.Location(),
			Truncate(item.Message.Text, messageWidth, true),
		)

		if i == m.cursor {
			cursor := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("► ")
			lines = append(lines, cursor+selectedStyle.Render(row))
		} else {
			lines = append(lines, "  "+normalStyle.Render(row))
		}
	}

	return lines
}

// renderDetail generates the detail view lines for the selected finding
func (m TriageModel) renderDetail() []string {
	if m.cursor >= len(m.items) {
		return []string{"No finding selected"}
	}

	item := m.items[m.cursor]
	msg := item.Message
	var lines []string

	headerText := fmt.Sprintf("Code: %s │ Severity: %s │ Line: %s │ Fingerprint: %s",
		msg.Code, msg.Level, item.Location(), msg.Fingerprint())
	lines = append(lines, detailHeaderStyle.Render(headerText))
	lines = append(lines, "")

	wrapWidth := m.terminalWidth - 4
	if wrapWidth < 40 {
		wrapWidth = 40
	}
	for _, line := range SplitLines(Wrap(msg.Text, wrapWidth)) {
		lines = append(lines, normalStyle.Render(line))
	}

	return lines
}

// severityCell renders the fixed-width, colored severity column.
func severityCell(level diag.Level) string {
	cell := TruncateAndPad(string(level), severityWidth, false)
	switch level {
	case diag.LevelError:
		return errorStyle.Render(cell)
	case diag.LevelWarning:
		return warningStyle.Render(cell)
	default:
		return infoStyle.Render(cell)
	}
}
