package optimizer

import (
	"sync"

	"github.com/transitflow/depotplan/core/model"
)

// HistoryStore keeps past run results. The engine itself stores nothing; the
// store is injected and owned by the calling layer.
type HistoryStore interface {
	Put(res model.Result)
	Last() (model.Result, bool)
	List() []model.Result
}

// MemoryHistory is a bounded in-memory HistoryStore safe for concurrent use.
type MemoryHistory struct {
	mu      sync.RWMutex
	results []model.Result
	limit   int
}

// NewMemoryHistory creates a store keeping at most limit results. A limit of
// zero keeps everything.
func NewMemoryHistory(limit int) *MemoryHistory {
	return &MemoryHistory{limit: limit}
}

func (h *MemoryHistory) Put(res model.Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = append(h.results, res)
	if h.limit > 0 && len(h.results) > h.limit {
		h.results = h.results[len(h.results)-h.limit:]
	}
}

func (h *MemoryHistory) Last() (model.Result, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.results) == 0 {
		return model.Result{}, false
	}
	return h.results[len(h.results)-1], true
}

func (h *MemoryHistory) List() []model.Result {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]model.Result(nil), h.results...)
}
