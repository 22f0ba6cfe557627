package simulation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/transitflow/depotplan/core/model"
)

// MemoryStore is an in-memory ResultStore safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]model.SimulationResult
	applied map[string]model.AppliedRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results: make(map[string]model.SimulationResult),
		applied: make(map[string]model.AppliedRecord),
	}
}

func (s *MemoryStore) Put(_ context.Context, res model.SimulationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.ScenarioID] = res
	return nil
}

func (s *MemoryStore) Get(_ context.Context, scenarioID string) (model.SimulationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[scenarioID]
	if !ok {
		return model.SimulationResult{}, fmt.Errorf("%w: %s", ErrUnknownScenario, scenarioID)
	}
	return res, nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.SimulationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SimulationResult, 0, len(s.results))
	for _, res := range s.results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) PutApplied(_ context.Context, rec model.AppliedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applied[rec.ScenarioID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyApplied, rec.ScenarioID)
	}
	s.applied[rec.ScenarioID] = rec
	return nil
}

func (s *MemoryStore) Applied(_ context.Context, scenarioID string) (model.AppliedRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.applied[scenarioID]
	return rec, ok, nil
}

func (s *MemoryStore) Close() error { return nil }
