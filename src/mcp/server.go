package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"svdcheck/src/diag"
	"svdcheck/src/svdconv"
)

// Server is the MCP server for svdcheck.
type Server struct {
	mcpServer *server.MCPServer
	runner    svdconv.Runner
	store     FindingsStore
}

// NewServer creates a new MCP server wrapping the given SVDConv runner.
func NewServer(runner svdconv.Runner) *Server {
	s := server.NewMCPServer(
		"svdcheck",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		runner:    runner,
		store:     NewInMemoryStore(),
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	validateTool := mcp.NewTool("validate_svd",
		mcp.WithDescription("Validate an SVD file with SVDConv and return a findings manifest. Each finding carries a fingerprint; use get_finding to retrieve the full message text."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .svd file to validate"),
		),
	)

	findingTool := mcp.NewTool("get_finding",
		mcp.WithDescription("Get the full message for a specific finding. Use after validate_svd to drill into a manifest entry."),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run ID from the validate_svd response"),
		),
		mcp.WithString("fingerprint",
			mcp.Required(),
			mcp.Description("Finding fingerprint from the manifest"),
		),
		mcp.WithNumber("line",
			mcp.Description("Line number from the manifest entry; omit for file-level findings"),
		),
	)

	s.mcpServer.AddTool(validateTool, s.handleValidateSVD)
	s.mcpServer.AddTool(findingTool, s.handleGetFinding)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleValidateSVD handles the validate_svd tool call.
// Returns a lightweight manifest; use get_finding for full message text.
func (s *Server) handleValidateSVD(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	output, err := s.runner.Run(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}

	report, err := diag.Aggregate(output)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse tool output: %v", err)), nil
	}

	runID := generateRunID()
	findings := toFindings(report)
	s.store.Store(runID, findings)

	manifest := Manifest{
		RunID:    runID,
		SVDPath:  path,
		Errors:   report.Stats.Errors,
		Warnings: report.Stats.Warnings,
		Notes:    report.Stats.Notes,
	}
	for _, f := range findings {
		manifest.Findings = append(manifest.Findings, FindingSummary{
			Fingerprint: f.Fingerprint,
			Severity:    f.Severity,
			Code:        f.Code,
			Line:        f.Line,
		})
	}

	jsonBytes, err := json.Marshal(manifest)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// handleGetFinding handles the get_finding tool call.
func (s *Server) handleGetFinding(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := request.GetString("run_id", "")
	if runID == "" {
		return mcp.NewToolResultError("run_id parameter is required"), nil
	}

	fingerprint := request.GetString("fingerprint", "")
	if fingerprint == "" {
		return mcp.NewToolResultError("fingerprint parameter is required"), nil
	}

	line := request.GetInt("line", 0)

	finding, found := s.store.Get(runID, fingerprint, line)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("finding not found: run_id=%s, fingerprint=%s, line=%d", runID, fingerprint, line)), nil
	}

	jsonBytes, err := json.Marshal(finding)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal finding: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// toFindings flattens a report into drill-down findings, line-ascending.
func toFindings(report *diag.Report) []Finding {
	var findings []Finding
	for _, msg := range report.Messages() {
		findings = append(findings, Finding{
			Fingerprint: msg.Fingerprint(),
			Severity:    string(msg.Level),
			Code:        msg.Code,
			Line:        msg.Line,
			Message:     msg.Text,
		})
	}
	return findings
}

// generateRunID creates a unique run identifier.
func generateRunID() string {
	timestamp := time.Now().UTC().Format("20060102T150405")
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("run-%s-%s", timestamp, hex.EncodeToString(randomBytes))
}
