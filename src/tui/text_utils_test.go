package tui

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis bool
		want     string
	}{
		{"short text unchanged", "hello", 10, true, "hello"},
		{"exact width unchanged", "hello", 5, true, "hello"},
		{"truncated with ellipsis", "hello world", 8, true, "hello..."},
		{"truncated without ellipsis", "hello world", 8, false, "hello wo"},
		{"zero width", "hello", 0, true, ""},
		{"trims surrounding whitespace", "  hello  ", 10, false, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxLen, tt.ellipsis)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d, %v) = %q, want %q", tt.input, tt.maxLen, tt.ellipsis, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	got := TruncateAndPad("err", 8, false)
	if got != "err     " {
		t.Errorf("TruncateAndPad() = %q, want %q", got, "err     ")
	}
	if VisualWidth(got) != 8 {
		t.Errorf("padded width = %d, want 8", VisualWidth(got))
	}
}

func TestWrapBreaksOnWordBoundaries(t *testing.T) {
	got := Wrap("peripheral name is not unique", 15)
	for i, line := range strings.Split(got, "\n") {
		if VisualWidth(line) > 15 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
	}
	if strings.ReplaceAll(got, "\n", " ") != "peripheral name is not unique" {
		t.Errorf("Wrap() lost content: %q", got)
	}
}

func TestWrapBreaksLongWords(t *testing.T) {
	got := Wrap("TIMER0_COUNTER_RELOAD_SHADOW", 10)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected long word to be broken, got %q", got)
	}
	for i, line := range lines {
		if VisualWidth(line) > 10 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
	}
}

func TestStripANSI(t *testing.T) {
	input := "\x1b[31m*** ERROR M343\x1b[0m plain"
	got := StripANSI(input)
	if got != "*** ERROR M343 plain" {
		t.Errorf("StripANSI() = %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	if lines := SplitLines(""); len(lines) != 0 {
		t.Errorf("SplitLines(\"\") = %v, want empty", lines)
	}
	if lines := SplitLines("a\nb"); len(lines) != 2 {
		t.Errorf("SplitLines(\"a\\nb\") = %v, want 2 lines", lines)
	}
}
