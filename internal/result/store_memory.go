package result

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	results map[string]Result
}

// NewMemoryStore keeps results in memory, for tests and offline runs.
func NewMemoryStore() Store {
	return &memoryStore{results: map[string]Result{}}
}

func (m *memoryStore) Save(_ context.Context, r Result) error {
	if r.ID == "" {
		return errors.New("result id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[r.ID] = r
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return Result{}, errors.New("result not found")
	}
	return r, nil
}

func (m *memoryStore) List(_ context.Context, opts ListOpts) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Result
	for _, r := range m.results {
		if opts.UserID != "" && r.UserID != opts.UserID {
			continue
		}
		if opts.ProgramID != "" && r.ProgramID != opts.ProgramID {
			continue
		}
		if opts.ModuleID != "" && r.ModuleID != opts.ModuleID {
			continue
		}
		if opts.ChapterID != "" && r.ChapterID != opts.ChapterID {
			continue
		}
		if opts.Scope != "" && r.Scope != opts.Scope {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt > out[j].CompletedAt })
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}
