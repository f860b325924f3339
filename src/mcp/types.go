// Package mcp provides the MCP server implementation for LLM-driven SVD validation.
package mcp

// Manifest is the lightweight validate_svd tool response. Full finding text
// is retrieved per-fingerprint via get_finding.
type Manifest struct {
	RunID    string           `json:"run_id"`
	SVDPath  string           `json:"svd_path"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
	Notes    int              `json:"notes"`
	Findings []FindingSummary `json:"findings"`
}

// FindingSummary is one manifest entry.
type FindingSummary struct {
	Fingerprint string `json:"fingerprint"`
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Line        int    `json:"line,omitempty"`
}

// Finding is the full drill-down payload for one diagnostic.
type Finding struct {
	Fingerprint string `json:"fingerprint"`
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Line        int    `json:"line,omitempty"`
	Message     string `json:"message"`
}
