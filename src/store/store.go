// Package store defines the interface for persisting run history.
package store

import (
	"context"

	"svdcheck/src/contracts"
)

// Store defines the interface for persisting validation runs and findings.
type Store interface {
	// CreateRun creates a new validation run record
	CreateRun(ctx context.Context, runID string, svdPath string, headSHA string) error

	// GetRunStatus returns the status of a run
	GetRunStatus(ctx context.Context, runID string) (*contracts.RunStatus, error)

	// UpdateRunStatus updates the status of a run
	UpdateRunStatus(ctx context.Context, status *contracts.RunStatus) error

	// ListRuns returns the most recent runs, newest first
	ListRuns(ctx context.Context, limit int) ([]contracts.RunStatus, error)

	// SaveFinding saves a single finding
	SaveFinding(ctx context.Context, finding *contracts.FindingEvent) error

	// GetFindings retrieves all findings for a run
	GetFindings(ctx context.Context, runID string) ([]contracts.FindingEvent, error)

	// Close closes the store connection
	Close() error
}
