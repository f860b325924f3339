// Package annotate converts parsed diagnostics into check-run annotations
// and drives the upload loop against the checks API.
package annotate

import (
	"fmt"
	"sort"

	"svdcheck/src/checks"
	"svdcheck/src/diag"
)

// NextBatch drains up to checks.MaxAnnotationsPerRequest messages from the
// report and converts them into annotations for path. Messages are removed
// from the report as they are batched (popped from the tail of each per-line
// slice; emptied lines are deleted), so repeated calls fully drain it.
// Returns nil once the report is empty.
//
// Line keys are drained in ascending order so uploads are deterministic and
// annotations land in source order.
func NextBatch(report *diag.Report, path string) []checks.Annotation {
	lines := make([]int, 0, len(report.ByLine))
	for line := range report.ByLine {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	var batch []checks.Annotation
	for _, line := range lines {
		msgs := report.ByLine[line]
		for len(msgs) > 0 && len(batch) < checks.MaxAnnotationsPerRequest {
			msg := msgs[len(msgs)-1]
			msgs = msgs[:len(msgs)-1]
			batch = append(batch, toAnnotation(msg, path))
		}

		if len(msgs) == 0 {
			delete(report.ByLine, line)
		} else {
			report.ByLine[line] = msgs
		}

		if len(batch) == checks.MaxAnnotationsPerRequest {
			break
		}
	}

	return batch
}

// toAnnotation projects one message onto the API's annotation shape.
// Start and end line are equal: SVDConv diagnostics are single-line.
func toAnnotation(msg diag.Message, path string) checks.Annotation {
	return checks.Annotation{
		Path:            path,
		StartLine:       msg.Line,
		EndLine:         msg.Line,
		AnnotationLevel: annotationLevel(msg.Level),
		Message:         fmt.Sprintf("%s: %s", msg.Code, msg.Text),
	}
}

// annotationLevel maps tool severities onto the API's vocabulary. Anything
// unrecognized maps to failure, the strictest level.
func annotationLevel(level diag.Level) string {
	switch level {
	case diag.LevelInfo:
		return checks.LevelNotice
	case diag.LevelWarning:
		return checks.LevelWarning
	default:
		return checks.LevelFailure
	}
}
