// Package main provides the unified svdcheck CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"svdcheck/src/annotate"
	"svdcheck/src/broker"
	"svdcheck/src/checks"
	"svdcheck/src/config"
	"svdcheck/src/contracts"
	"svdcheck/src/diag"
	"svdcheck/src/logger"
	"svdcheck/src/mcp"
	"svdcheck/src/render"
	"svdcheck/src/store"
	"svdcheck/src/svdconv"
	"svdcheck/src/tui"
)

var (
	appConfig *config.Config

	localOnly bool
	emit      bool
	limit     int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "svdcheck",
	Short: "svdcheck - SVDConv validation for CI pipelines",
	Long: `svdcheck runs the SVDConv validation tool against an SVD file, parses
its diagnostics, and publishes them as GitHub check-run annotations.

Modes:
- check:  CI mode, publishes findings to a pull request check run
- triage: interactive local triage TUI
- history: query past runs from Postgres
- mcp:    serve validation tools over MCP stdio`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appConfig = config.LoadFromEnv()
	},
}

// checkCmd validates an SVD file and publishes a check run
var checkCmd = &cobra.Command{
	Use:   "check [svd-file]",
	Short: "Validate an SVD file and publish findings to a GitHub check run",
	Long: `Run SVDConv against the given SVD file, parse its diagnostics, and
upload them as check-run annotations in batches.

Requires GITHUB_TOKEN, GITHUB_REPOSITORY and GITHUB_SHA (all provided by
GitHub Actions). Pass --local to print findings to the console instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svdPath := args[0]
		ctx := context.Background()
		log := logger.NewConsoleLogger()

		output, err := runTool(ctx, svdPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "SVDConv failed: %v\n", err)
			os.Exit(1)
		}

		report, err := diag.Aggregate(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse SVDConv output: %v\n", err)
			os.Exit(1)
		}

		if localOnly {
			fmt.Print(render.Summary(svdPath, report))
			return
		}

		if err := appConfig.RequireGitHub(); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		owner, repo, err := appConfig.OwnerRepo()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}

		// Publishing drains the report, so capture findings first for the
		// history store and broker emission.
		messages := report.Messages()
		stats := report.Stats
		runID := fmt.Sprintf("run-%s-%s", time.Now().UTC().Format("20060102T150405"), shortSHA(appConfig.HeadSHA))

		params := annotate.Params{
			Owner:   owner,
			Repo:    repo,
			HeadSHA: checks.ResolveHeadSHA(appConfig.EventPath, appConfig.HeadSHA),
			SVDPath: svdPath,
		}

		publisher := annotate.NewPublisher(checks.NewClient(appConfig.GitHubToken), log)
		publishErr := publisher.Publish(ctx, params, report)

		recordRun(ctx, log, runID, svdPath, params.HeadSHA, stats, messages, publishErr)
		if emit {
			emitFindings(ctx, log, runID, svdPath, messages)
		}

		if publishErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to publish check run: %v\n", publishErr)
			os.Exit(1)
		}

		log.Info("published %d findings for %s", len(messages), svdPath)
	},
}

// triageCmd validates an SVD file and opens the interactive TUI
var triageCmd = &cobra.Command{
	Use:   "triage [svd-file]",
	Short: "Validate an SVD file and triage findings interactively",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svdPath := args[0]
		ctx := context.Background()

		output, err := runTool(ctx, svdPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "SVDConv failed: %v\n", err)
			os.Exit(1)
		}

		report, err := diag.Aggregate(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse SVDConv output: %v\n", err)
			os.Exit(1)
		}

		if err := tui.Start(svdPath, report, output); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	},
}

// historyCmd lists past validation runs from Postgres
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past validation runs",
	Long:  `Query Postgres for recent validation runs. Requires SVDCHECK_POSTGRES_DSN.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if appConfig.PostgresDSN == "" {
			fmt.Fprintln(os.Stderr, "ERROR: SVDCHECK_POSTGRES_DSN environment variable is required for history command")
			os.Exit(1)
		}

		st, err := store.NewPostgresStore(appConfig.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to Postgres: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		runs, err := st.ListRuns(ctx, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list runs: %v\n", err)
			os.Exit(1)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return
		}

		fmt.Printf("%-32s %-24s %-10s %-8s %-9s %-6s\n", "RUN", "SVD", "STATUS", "ERRORS", "WARNINGS", "NOTES")
		for _, r := range runs {
			fmt.Printf("%-32s %-24s %-10s %-8d %-9d %-6d\n",
				r.RunID, r.SVDPath, r.Status, r.Errors, r.Warnings, r.Notes)
		}
	},
}

// mcpCmd serves the validation tools over MCP stdio
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve SVD validation tools over MCP stdio",
	Run: func(cmd *cobra.Command, args []string) {
		srv := mcp.NewServer(svdconv.NewExecRunner(appConfig.SVDConvPath))
		if err := srv.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runTool invokes SVDConv and returns its stdout.
func runTool(ctx context.Context, svdPath string) (string, error) {
	runner := svdconv.NewExecRunner(appConfig.SVDConvPath)
	return runner.Run(ctx, svdPath)
}

// recordRun persists the run and its findings when Postgres is configured.
func recordRun(ctx context.Context, log logger.Logger, runID, svdPath, headSHA string, stats diag.Stats, messages []diag.Message, publishErr error) {
	if appConfig.PostgresDSN == "" {
		return
	}

	st, err := store.NewPostgresStore(appConfig.PostgresDSN)
	if err != nil {
		log.Error("history store unavailable: %v", err)
		return
	}
	defer st.Close()

	if err := st.CreateRun(ctx, runID, svdPath, headSHA); err != nil {
		log.Error("failed to record run: %v", err)
		return
	}

	for i := range messages {
		event := toFindingEvent(runID, svdPath, messages[i])
		if err := st.SaveFinding(ctx, &event); err != nil {
			log.Error("failed to record finding %s: %v", event.Fingerprint, err)
		}
	}

	status := contracts.RunCompleted
	if publishErr != nil {
		status = contracts.RunFailed
	}
	update := &contracts.RunStatus{
		RunID:         runID,
		SVDPath:       svdPath,
		HeadSHA:       headSHA,
		Status:        status,
		Errors:        stats.Errors,
		Warnings:      stats.Warnings,
		Notes:         stats.Notes,
		FindingsCount: len(messages),
	}
	if err := st.UpdateRunStatus(ctx, update); err != nil {
		log.Error("failed to update run status: %v", err)
	}
}

// emitFindings publishes one event per finding to the configured brokers.
func emitFindings(ctx context.Context, log logger.Logger, runID, svdPath string, messages []diag.Message) {
	if len(appConfig.Brokers) == 0 {
		log.Error("--emit requires SVDCHECK_BROKERS")
		return
	}

	b, err := broker.NewRedpandaBroker(appConfig.Brokers)
	if err != nil {
		log.Error("broker unavailable: %v", err)
		return
	}
	defer b.Close()

	for i := range messages {
		event := toFindingEvent(runID, svdPath, messages[i])
		data, err := json.Marshal(event)
		if err != nil {
			log.Error("failed to marshal finding event: %v", err)
			continue
		}
		if err := b.Publish(ctx, contracts.TopicFindings, runID, data); err != nil {
			log.Error("failed to publish finding event: %v", err)
		}
	}
}

func toFindingEvent(runID, svdPath string, msg diag.Message) contracts.FindingEvent {
	return contracts.FindingEvent{
		RunID:       runID,
		SVDPath:     svdPath,
		Severity:    string(msg.Level),
		Code:        msg.Code,
		Line:        msg.Line,
		Message:     msg.Text,
		Fingerprint: msg.Fingerprint(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func init() {
	checkCmd.Flags().BoolVar(&localOnly, "local", false, "print findings to the console instead of publishing")
	checkCmd.Flags().BoolVar(&emit, "emit", false, "publish finding events to SVDCHECK_BROKERS")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
