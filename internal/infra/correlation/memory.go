package correlation

import (
	"context"
	"sync"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/pkg/errs"
)

// MemoryStore is a process-local store for tests and single-instance development.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]correlation.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]correlation.Snapshot)}
}

func (s *MemoryStore) Create(_ context.Context, p *correlation.Pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[p.ReferenceID()]; ok {
		return errs.ErrCorrelationExists
	}
	s.records[p.ReferenceID()] = p.Snapshot()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, referenceID string) (*correlation.Pending, error) {
	s.mu.Lock()
	snap, ok := s.records[referenceID]
	s.mu.Unlock()
	if !ok {
		return nil, errs.ErrCorrelationNotFound
	}
	return correlation.FromSnapshot(snap)
}

func (s *MemoryStore) MarkUsed(_ context.Context, referenceID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.records[referenceID]
	if !ok || snap.Used {
		return false, nil
	}
	snap.Used = true
	snap.UsedAt = &at
	s.records[referenceID] = snap
	return true, nil
}
