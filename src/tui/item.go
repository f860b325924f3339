package tui

import (
	"fmt"

	"svdcheck/src/diag"
)

// Item represents one finding displayed in the triage list.
// It wraps the domain diag.Message and implements bubbles/list.Item.
type Item struct {
	Message diag.Message
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Message.Text }

// Title returns the primary text for the item (required by list.Item).
func (i Item) Title() string { return i.Message.Text }

// Description returns the secondary text for the item (required by list.Item).
func (i Item) Description() string {
	if i.Message.Line == 0 {
		return fmt.Sprintf("%s %s", i.Message.Code, i.Message.Level)
	}
	return fmt.Sprintf("%s %s (line %d)", i.Message.Code, i.Message.Level, i.Message.Line)
}

// Location renders the source position column; file-level findings have no line.
func (i Item) Location() string {
	if i.Message.Line == 0 {
		return "file"
	}
	return fmt.Sprintf("%d", i.Message.Line)
}
