// Package store provides an in-memory store implementation.
package store

import (
	"context"
	"fmt"
	"sync"

	"svdcheck/src/contracts"
)

// MemoryStore is an in-memory implementation of Store.
// Useful for testing and local runs without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	runs     map[string]*contracts.RunStatus
	order    []string // run IDs in creation order
	findings map[string][]contracts.FindingEvent
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:     make(map[string]*contracts.RunStatus),
		findings: make(map[string][]contracts.FindingEvent),
	}
}

// CreateRun creates a new validation run record.
func (s *MemoryStore) CreateRun(ctx context.Context, runID string, svdPath string, headSHA string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[runID]; !exists {
		s.order = append(s.order, runID)
	}

	s.runs[runID] = &contracts.RunStatus{
		RunID:   runID,
		SVDPath: svdPath,
		HeadSHA: headSHA,
		Status:  contracts.RunPending,
	}

	return nil
}

// GetRunStatus returns the status of a run.
func (s *MemoryStore) GetRunStatus(ctx context.Context, runID string) (*contracts.RunStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, exists := s.runs[runID]
	if !exists {
		return nil, fmt.Errorf("run not found: %s", runID)
	}

	// Return a copy
	statusCopy := *status
	return &statusCopy, nil
}

// UpdateRunStatus updates the status of a run.
func (s *MemoryStore) UpdateRunStatus(ctx context.Context, status *contracts.RunStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[status.RunID]; !exists {
		return fmt.Errorf("run not found: %s", status.RunID)
	}

	s.runs[status.RunID] = status
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]contracts.RunStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []contracts.RunStatus
	for i := len(s.order) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, *s.runs[s.order[i]])
	}
	return result, nil
}

// SaveFinding saves a single finding.
func (s *MemoryStore) SaveFinding(ctx context.Context, finding *contracts.FindingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findings[finding.RunID] = append(s.findings[finding.RunID], *finding)
	return nil
}

// GetFindings retrieves all findings for a run.
func (s *MemoryStore) GetFindings(ctx context.Context, runID string) ([]contracts.FindingEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	findings, exists := s.findings[runID]
	if !exists {
		return []contracts.FindingEvent{}, nil
	}

	// Return a copy
	result := make([]contracts.FindingEvent, len(findings))
	copy(result, findings)
	return result, nil
}

// Close closes the store (no-op for memory store).
func (s *MemoryStore) Close() error {
	return nil
}
