// Package diag parses SVDConv diagnostic output into structured messages.
//
// SVDConv reports each finding as a two-line record: a header line carrying
// severity, code and an optional source line number, followed by a free-text
// description line:
//
//	*** WARNING M305: Field 'foo' (Line 12)
//	  Field size exceeds register width.
package diag

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// Level is the normalized severity of a diagnostic.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one structured diagnostic extracted from tool output.
type Message struct {
	// Level is the case-normalized severity.
	Level Level
	// Code is the tool-defined identifier (e.g. "M305"), opaque to svdcheck.
	Code string
	// Line is the source line the diagnostic refers to; 0 means file-level.
	Line int
	// Text is the trimmed description line.
	Text string
}

// Fingerprint returns a stable identifier for the diagnostic, used to key
// findings across store, broker and MCP drill-down. Line numbers are
// excluded so the same finding keeps its identity when the file shifts.
func (m Message) Fingerprint() string {
	key := fmt.Sprintf("%s::%s::%s", m.Level, m.Code, m.Text)
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", sum[:8])
}

// Stats counts parsed headers per severity. Counters are incremented when a
// header is recognized, whether or not its description line ever arrives.
type Stats struct {
	Notes    int
	Warnings int
	Errors   int
}

// Total returns the number of counted headers.
func (s Stats) Total() int {
	return s.Notes + s.Warnings + s.Errors
}

// Report pairs the messages grouped by source line with the final counter
// snapshot for one aggregation pass.
type Report struct {
	// ByLine maps a source line number (0 = file-level) to the messages
	// reported there, in parse order.
	ByLine map[int][]Message
	Stats  Stats
}

// Remaining returns the number of messages still held in the report.
// It shrinks as annotate.NextBatch drains the report.
func (r *Report) Remaining() int {
	n := 0
	for _, msgs := range r.ByLine {
		n += len(msgs)
	}
	return n
}

// Messages returns a flat copy of all messages in the report, ordered by
// line number ascending then parse order. The report is not modified.
func (r *Report) Messages() []Message {
	out := make([]Message, 0, r.Remaining())
	for _, line := range sortedLines(r.ByLine) {
		out = append(out, r.ByLine[line]...)
	}
	return out
}

func sortedLines(byLine map[int][]Message) []int {
	lines := make([]int, 0, len(byLine))
	for line := range byLine {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}
