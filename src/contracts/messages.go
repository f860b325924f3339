// Package contracts defines the message and record types shared by the
// broker, store and MCP layers.
package contracts

// FindingEvent is one diagnostic published for downstream consumers.
// Published to: svdcheck.findings
// Key: {run_id}
type FindingEvent struct {
	// RunID identifies the validation run that produced this finding.
	RunID string `json:"run_id"`
	// SVDPath is the validated file's repository path.
	SVDPath string `json:"svd_path"`
	// Severity is the normalized level (info, warning, error).
	Severity string `json:"severity"`
	// Code is the SVDConv message code (e.g. "M305").
	Code string `json:"code"`
	// Line is the source line the finding refers to; 0 = file-level.
	Line int `json:"line"`
	// Message is the finding's description text.
	Message string `json:"message"`
	// Fingerprint keys the finding across runs (line-independent).
	Fingerprint string `json:"fingerprint"`
	// Timestamp is RFC3339 event creation time.
	Timestamp string `json:"timestamp"`
}

// RunStatus tracks one validation run in the history store.
type RunStatus struct {
	RunID         string
	SVDPath       string
	HeadSHA       string
	Status        string // pending, completed, failed
	Errors        int
	Warnings      int
	Notes         int
	FindingsCount int
}

// Run statuses.
const (
	RunPending   = "pending"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// TopicFindings is the broker topic finding events are published to.
const TopicFindings = "svdcheck.findings"
