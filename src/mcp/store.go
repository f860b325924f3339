package mcp

import (
	"fmt"
	"sync"
)

// FindingsStore is the interface for storing and retrieving run findings.
type FindingsStore interface {
	// Store saves the findings of a validation run.
	Store(runID string, findings []Finding)
	// Get retrieves a single finding by fingerprint and line.
	Get(runID, fingerprint string, line int) (Finding, bool)
	// GetAll retrieves all findings for a run.
	GetAll(runID string) ([]Finding, bool)
}

// InMemoryStore is a thread-safe in-memory implementation of FindingsStore.
type InMemoryStore struct {
	mu       sync.RWMutex
	runs     map[string][]Finding
	findings map[string]map[string]Finding // run_id -> fingerprint -> finding
}

// NewInMemoryStore creates a new in-memory findings store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		runs:     make(map[string][]Finding),
		findings: make(map[string]map[string]Finding),
	}
}

// Store saves run findings, indexed by fingerprint and line for drill-down.
// The fingerprint alone is not unique within a run: it deliberately excludes
// the line number, so the same diagnostic on two lines shares one.
func (s *InMemoryStore) Store(runID string, findings []Finding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[runID] = findings

	findingsMap := make(map[string]Finding)
	for _, f := range findings {
		findingsMap[drillKey(f.Fingerprint, f.Line)] = f
	}
	s.findings[runID] = findingsMap
}

// Get retrieves a finding by fingerprint and line.
func (s *InMemoryStore) Get(runID, fingerprint string, line int) (Finding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if findingsMap, ok := s.findings[runID]; ok {
		f, found := findingsMap[drillKey(fingerprint, line)]
		return f, found
	}
	return Finding{}, false
}

func drillKey(fingerprint string, line int) string {
	return fmt.Sprintf("%s:%d", fingerprint, line)
}

// GetAll retrieves all findings for a run.
func (s *InMemoryStore) GetAll(runID string) ([]Finding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.runs[runID]
	return f, ok
}
