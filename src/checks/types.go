package checks

// Annotation levels accepted by the check-run API.
const (
	LevelNotice  = "notice"
	LevelWarning = "warning"
	LevelFailure = "failure"
)

// Check-run statuses and conclusions used by svdcheck.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	ConclusionNeutral   = "neutral"
	ConclusionCancelled = "cancelled"
)

// MaxAnnotationsPerRequest is the API's hard limit on annotations in one
// update call. Larger sets are sent across multiple updates; annotations
// accumulate server-side.
const MaxAnnotationsPerRequest = 50

// Annotation attaches a diagnostic to a file/line range on a check run.
type Annotation struct {
	Path            string `json:"path"`
	StartLine       int    `json:"start_line"`
	EndLine         int    `json:"end_line"`
	AnnotationLevel string `json:"annotation_level"`
	Message         string `json:"message"`
}

// Output is the check run's output block.
type Output struct {
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Text        string       `json:"text,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// CreateRequest is the body for creating a check run.
type CreateRequest struct {
	Name    string `json:"name"`
	HeadSHA string `json:"head_sha"`
	Status  string `json:"status"`
}

// UpdateRequest is the body for updating a check run. The same call performs
// incremental annotation pushes (status in_progress) and the final completed
// transition (conclusion set).
type UpdateRequest struct {
	Status     string  `json:"status"`
	Conclusion string  `json:"conclusion,omitempty"`
	Output     *Output `json:"output,omitempty"`
}

// CheckRun is the subset of the API's check-run object svdcheck reads.
type CheckRun struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	HTMLURL string `json:"html_url"`
}
