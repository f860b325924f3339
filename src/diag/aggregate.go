package diag

import "strings"

// Aggregate runs the parser over the full raw tool output and groups every
// emitted message by its source line. It fails without a partial result if
// any marker-prefixed line does not match the header pattern.
func Aggregate(output string) (*Report, error) {
	parser := NewParser()
	report := &Report{ByLine: make(map[int][]Message)}

	for _, line := range strings.Split(output, "\n") {
		msg, err := parser.Feed(line)
		if err != nil {
			return nil, err
		}
		if msg != nil {
			report.ByLine[msg.Line] = append(report.ByLine[msg.Line], *msg)
		}
	}

	report.Stats = parser.Stats()
	return report, nil
}
