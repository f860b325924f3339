package diag

import (
	"errors"
	"testing"
)

func TestParser_WellFormedRecord(t *testing.T) {
	p := NewParser()

	msg, err := p.Feed("*** WARNING M305: Field 'foo' (Line 12)")
	if err != nil {
		t.Fatalf("Feed(header) unexpected error: %v", err)
	}
	if msg != nil {
		t.Fatalf("Feed(header) emitted %+v, want nil", msg)
	}

	msg, err = p.Feed("  Field size exceeds register width.")
	if err != nil {
		t.Fatalf("Feed(description) unexpected error: %v", err)
	}
	if msg == nil {
		t.Fatal("Feed(description) emitted nil, want message")
	}

	if msg.Level != LevelWarning {
		t.Errorf("Level = %q, want %q", msg.Level, LevelWarning)
	}
	if msg.Code != "M305" {
		t.Errorf("Code = %q, want M305", msg.Code)
	}
	if msg.Line != 12 {
		t.Errorf("Line = %d, want 12", msg.Line)
	}
	if msg.Text != "Field size exceeds register width." {
		t.Errorf("Text = %q, want trimmed description", msg.Text)
	}
}

func TestParser_HeaderVariants(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantLvl  Level
		wantCode string
		wantLine int
	}{
		{
			name:     "error with line",
			header:   "*** ERROR M343: Peripheral 'TIM1' (Line 480)",
			wantLvl:  LevelError,
			wantCode: "M343",
			wantLine: 480,
		},
		{
			name:     "info without line",
			header:   "*** INFO M210: Ignoring vendor extension",
			wantLvl:  LevelInfo,
			wantCode: "M210",
			wantLine: 0,
		},
		{
			name:     "line marker mid-text is not a suffix",
			header:   "*** WARNING M350: see (Line 5) convention elsewhere",
			wantLvl:  LevelWarning,
			wantCode: "M350",
			wantLine: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			if _, err := p.Feed(tt.header); err != nil {
				t.Fatalf("Feed(header) unexpected error: %v", err)
			}
			msg, err := p.Feed("description text")
			if err != nil {
				t.Fatalf("Feed(description) unexpected error: %v", err)
			}
			if msg == nil {
				t.Fatal("no message emitted")
			}
			if msg.Level != tt.wantLvl {
				t.Errorf("Level = %q, want %q", msg.Level, tt.wantLvl)
			}
			if msg.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", msg.Code, tt.wantCode)
			}
			if msg.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", msg.Line, tt.wantLine)
			}
		})
	}
}

func TestParser_NoiseIgnored(t *testing.T) {
	p := NewParser()

	for _, line := range []string{
		"MVCM3110.svd validated",
		"",
		"Area of improvements:",
	} {
		msg, err := p.Feed(line)
		if err != nil {
			t.Fatalf("Feed(%q) unexpected error: %v", line, err)
		}
		if msg != nil {
			t.Errorf("Feed(%q) emitted %+v, want nil", line, msg)
		}
	}

	if got := p.Stats(); got != (Stats{}) {
		t.Errorf("Stats = %+v, want zero", got)
	}
}

func TestParser_MalformedHeaderFails(t *testing.T) {
	p := NewParser()

	_, err := p.Feed("*** something that is not a diagnostic")
	if err == nil {
		t.Fatal("Feed(malformed marker line) succeeded, want error")
	}

	var malformed *MalformedHeaderError
	if !errors.As(err, &malformed) {
		t.Fatalf("error type = %T, want *MalformedHeaderError", err)
	}
}

func TestParser_DanglingHeaderCountsButDoesNotEmit(t *testing.T) {
	p := NewParser()

	if _, err := p.Feed("*** ERROR M343: Register 'CR' (Line 99)"); err != nil {
		t.Fatalf("Feed(header) unexpected error: %v", err)
	}

	// End of input: no description line ever arrives.
	got := p.Stats()
	if got.Errors != 1 {
		t.Errorf("Stats.Errors = %d, want 1 (dangling header still counts)", got.Errors)
	}
}

func TestParser_HeaderAfterHeaderDropsFirst(t *testing.T) {
	p := NewParser()

	if _, err := p.Feed("*** WARNING M305: Field 'a' (Line 10)"); err != nil {
		t.Fatalf("Feed(first header) unexpected error: %v", err)
	}

	msg, err := p.Feed("*** ERROR M343: Field 'b' (Line 11)")
	if err != nil {
		t.Fatalf("Feed(second header) unexpected error: %v", err)
	}
	if msg != nil {
		t.Fatalf("second header emitted %+v, want nil (first record dropped)", msg)
	}

	msg, err = p.Feed("description for the second header")
	if err != nil {
		t.Fatalf("Feed(description) unexpected error: %v", err)
	}
	if msg == nil || msg.Code != "M343" {
		t.Fatalf("emitted %+v, want the second header's record", msg)
	}

	// Both headers were recognized, so both counted.
	got := p.Stats()
	if got.Warnings != 1 || got.Errors != 1 {
		t.Errorf("Stats = %+v, want one warning and one error", got)
	}
}

func TestMessage_Fingerprint(t *testing.T) {
	a := Message{Level: LevelError, Code: "M343", Line: 10, Text: "bad register"}
	b := Message{Level: LevelError, Code: "M343", Line: 99, Text: "bad register"}
	c := Message{Level: LevelError, Code: "M343", Line: 10, Text: "other register"}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint should ignore line numbers")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprint should distinguish different texts")
	}
}
