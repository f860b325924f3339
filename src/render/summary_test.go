package render

import (
	"strings"
	"testing"

	"svdcheck/src/diag"
)

const sampleOutput = `*** WARNING M305: file.svd (Line 12)
  Name 'TIMER0' is not unique
*** ERROR M343: file.svd (Line 40)
  Peripheral 'UART1' has no registers
`

func TestSummaryListsFindings(t *testing.T) {
	report, err := diag.Aggregate(sampleOutput)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	out := Summary("file.svd", report)

	if !strings.Contains(out, "file.svd") {
		t.Error("summary missing SVD path")
	}
	if !strings.Contains(out, "M305") || !strings.Contains(out, "M343") {
		t.Error("summary missing finding codes")
	}
	if !strings.Contains(out, "line 40") {
		t.Error("summary missing line location")
	}
	if !strings.Contains(out, "1 errors") || !strings.Contains(out, "1 warnings") {
		t.Error("summary missing severity tally")
	}
}

func TestSummaryEmptyReport(t *testing.T) {
	report, err := diag.Aggregate("clean run\n")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	out := Summary("file.svd", report)
	if !strings.Contains(out, "No findings reported.") {
		t.Errorf("empty summary = %q", out)
	}
}

func TestTallyCounts(t *testing.T) {
	out := Tally(diag.Stats{Notes: 1, Warnings: 2, Errors: 3})
	for _, want := range []string{"3 errors", "2 warnings", "1 notes"} {
		if !strings.Contains(out, want) {
			t.Errorf("Tally() missing %q: %q", want, out)
		}
	}
}
