package testing

import (
	"context"
	"sync"

	"github.com/aristath/divdesk/internal/domain"
)

// MockSnapshotProvider is a mock implementation of domain.SnapshotProvider for testing
type MockSnapshotProvider struct {
	mu       sync.RWMutex
	snapshot domain.Snapshot
	err      error
	loads    int
}

// NewMockSnapshotProvider creates a mock provider serving the given snapshot
func NewMockSnapshotProvider(snapshot domain.Snapshot) *MockSnapshotProvider {
	return &MockSnapshotProvider{snapshot: snapshot}
}

// SetSnapshot sets the snapshot to return
func (m *MockSnapshotProvider) SetSnapshot(snapshot domain.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
}

// SetError sets the error to return
func (m *MockSnapshotProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Load returns the configured snapshot or error
func (m *MockSnapshotProvider) Load(ctx context.Context) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return domain.Snapshot{}, m.err
	}
	return m.snapshot, nil
}

// LoadCount returns how many times Load was called
func (m *MockSnapshotProvider) LoadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads
}
