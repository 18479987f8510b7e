package runs

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrInvalidRunID     = errors.New("invalid run ID")
)

// Manager keeps run records in memory with optional write-through
// persistence
type Manager struct {
	runs        map[string]*Run
	persistence Persistence
	mu          sync.RWMutex
}

// NewManager creates an in-memory run manager
func NewManager() *Manager {
	return &Manager{runs: make(map[string]*Run)}
}

// NewManagerWithPersistence creates a run manager backed by persistence
func NewManagerWithPersistence(persistence Persistence) *Manager {
	return &Manager{
		runs:        make(map[string]*Run),
		persistence: persistence,
	}
}

// Record stores run, assigning a new ID when it has none
func (m *Manager) Record(run *Run) (*Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRunID, run.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[run.ID]; exists {
		return nil, ErrRunAlreadyExists
	}
	m.runs[run.ID] = run

	// Persistence failures do not fail the solve that produced the run
	if m.persistence != nil {
		if err := m.persistence.Save(run); err != nil {
			logrus.WithFields(logrus.Fields{
				"run_id": run.ID,
				"error":  err,
			}).Warn("Failed to persist run")
		}
	}
	return run, nil
}

// Get returns the run with id, falling back to persistence
func (m *Manager) Get(id string) (*Run, error) {
	m.mu.RLock()
	run, exists := m.runs[id]
	m.mu.RUnlock()
	if exists {
		return run, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		run, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted run: %w", err)
		}
		m.mu.Lock()
		m.runs[id] = run
		m.mu.Unlock()
		return run, nil
	}
	return nil, ErrRunNotFound
}

// List returns the runs newest first, optionally only those of puzzle
func (m *Manager) List(puzzle string) []*Run {
	m.mu.RLock()
	result := make([]*Run, 0, len(m.runs))
	for _, run := range m.runs {
		if puzzle == "" || run.Puzzle == puzzle {
			result = append(result, run)
		}
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartedAt.Equal(result[j].StartedAt) {
			return result[i].StartedAt.After(result[j].StartedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Delete removes a run from memory and persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.runs[id]
	delete(m.runs, id)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted run: %w", err)
		}
		return nil
	}
	if !inMemory {
		return ErrRunNotFound
	}
	return nil
}

// DeleteFromMemory removes a run from memory only
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[id]; !exists {
		return ErrRunNotFound
	}
	delete(m.runs, id)
	return nil
}

// CleanupOlderThan drops in-memory runs that finished before maxAge ago
func (m *Manager) CleanupOlderThan(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, run := range m.runs {
		if run.FinishedAt.Before(cutoff) {
			delete(m.runs, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of runs in memory
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// LoadPersisted loads every persisted run into memory
func (m *Manager) LoadPersisted() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted runs: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if _, exists := m.runs[id]; exists {
			continue
		}
		run, err := m.persistence.Load(id)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"run_id": id,
				"error":  err,
			}).Warn("Failed to load persisted run")
			continue
		}
		m.runs[id] = run
		loaded++
	}

	if loaded > 0 {
		logrus.WithField("count", loaded).Info("Loaded persisted runs")
	}
	return nil
}

// PruneMissing drops in-memory runs whose files were deleted
func (m *Manager) PruneMissing() int {
	if m.persistence == nil {
		return 0
	}
	pruned := 0
	for _, run := range m.List("") {
		if !m.persistence.Exists(run.ID) {
			if err := m.DeleteFromMemory(run.ID); err == nil {
				pruned++
			}
		}
	}
	return pruned
}
