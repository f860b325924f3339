package diag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// markerPrefix introduces a diagnostic header line in SVDConv output.
const markerPrefix = "***"

// headerPattern matches a diagnostic header line. Severity keywords are
// uppercase in the tool's output; the trailing "(Line N)" group is optional
// (absent for file-level diagnostics).
var headerPattern = regexp.MustCompile(`^\*\*\* (INFO|ERROR|WARNING) (M\d+):.*?(?:\(Line (\d+)\))?\s*$`)

// MalformedHeaderError reports a line that starts with the diagnostic marker
// but does not match the full header pattern. It is fatal for the whole
// aggregation pass: nothing is uploaded from a buffer the parser could not
// fully account for.
type MalformedHeaderError struct {
	Line string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed diagnostic header: %q", e.Line)
}

// parseState is the parser's position in the two-line record grammar.
type parseState int

const (
	// stateNoise is the idle state; non-header lines are skipped.
	stateNoise parseState = iota
	// stateExpectDescription means a header was just seen and the next
	// line supplies its description.
	stateExpectDescription
)

// pending holds the header fields captured while waiting for the
// description line.
type pending struct {
	level Level
	code  string
	line  int
}

// transition is the pure state-transition function: given the current state,
// the pending header capture and the next input line, it returns the next
// state, the new capture, an emitted message (if the line completed a
// record) and the severity of a header recognized on this line (empty
// otherwise, used by the caller to keep counters).
//
// A marker-prefixed line always starts a new header, even in
// stateExpectDescription: a header directly followed by another header
// silently loses the first record, mirroring the tool's own malformed
// output rather than correcting it.
func transition(s parseState, p pending, line string) (parseState, pending, *Message, Level, error) {
	if strings.HasPrefix(line, markerPrefix) {
		m := headerPattern.FindStringSubmatch(line)
		if m == nil {
			return stateNoise, pending{}, nil, "", &MalformedHeaderError{Line: line}
		}

		hdr := pending{
			level: Level(strings.ToLower(m[1])),
			code:  m[2],
		}
		if m[3] != "" {
			// The pattern guarantees digits.
			hdr.line, _ = strconv.Atoi(m[3])
		}
		return stateExpectDescription, hdr, nil, hdr.level, nil
	}

	if s == stateExpectDescription {
		msg := &Message{
			Level: p.level,
			Code:  p.code,
			Line:  p.line,
			Text:  strings.TrimSpace(line),
		}
		return stateNoise, pending{}, msg, "", nil
	}

	return stateNoise, pending{}, nil, "", nil
}

// Parser consumes one line of raw tool output at a time and emits a Message
// whenever a header/description pair completes. It owns the running Stats;
// counters move when a header is recognized, so a dangling header at end of
// input is counted even though its message is never emitted.
type Parser struct {
	state   parseState
	pending pending
	stats   Stats
}

func NewParser() *Parser {
	return &Parser{}
}

// Feed advances the parser by one line. The returned message is nil unless
// this line completed a record. A MalformedHeaderError leaves the parser in
// the idle state.
func (p *Parser) Feed(line string) (*Message, error) {
	next, hdr, msg, seen, err := transition(p.state, p.pending, line)
	p.state, p.pending = next, hdr
	if err != nil {
		return nil, err
	}

	switch seen {
	case LevelInfo:
		p.stats.Notes++
	case LevelWarning:
		p.stats.Warnings++
	case LevelError:
		p.stats.Errors++
	}

	return msg, nil
}

// Stats returns a snapshot of the running counters.
func (p *Parser) Stats() Stats {
	return p.stats
}
