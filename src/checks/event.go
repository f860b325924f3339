package checks

import (
	"encoding/json"
	"os"
)

// eventPayload is the slice of the Actions event payload svdcheck reads.
type eventPayload struct {
	PullRequest struct {
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

// ResolveHeadSHA returns the commit the check run should attach to. For
// pull_request events GITHUB_SHA points at a synthetic merge commit, so the
// PR head SHA from the event payload takes priority; otherwise (push events,
// missing or unreadable payload) fallbackSHA is used.
func ResolveHeadSHA(eventPath, fallbackSHA string) string {
	if eventPath == "" {
		return fallbackSHA
	}

	data, err := os.ReadFile(eventPath)
	if err != nil {
		return fallbackSHA
	}

	var event eventPayload
	if err := json.Unmarshal(data, &event); err != nil {
		return fallbackSHA
	}

	if sha := event.PullRequest.Head.SHA; sha != "" {
		return sha
	}
	return fallbackSHA
}
