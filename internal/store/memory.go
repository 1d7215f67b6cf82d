package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is the in-process document mirror. It backs the offline
// fallback path and stands in for the remote store in tests. Each instance
// owns its data, so a test can construct a fresh one instead of sharing
// process-wide state.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

func (m *MemoryStore) FetchCollection(ctx context.Context, name string, filters []Filter, order *Order) ([]Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []Doc
	for id, data := range m.collections[name] {
		ok := true
		for _, f := range filters {
			if !matchFilter(data, f) {
				ok = false
				break
			}
		}
		if ok {
			docs = append(docs, Doc{ID: id, Data: cloneData(data)})
		}
	}

	if order != nil {
		sort.Slice(docs, func(i, j int) bool {
			return orderLess(docs[i].Data, docs[j].Data, order)
		})
	} else {
		// Deterministic iteration for callers and tests.
		sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	}
	return docs, nil
}

func (m *MemoryStore) FetchOne(ctx context.Context, name, id string) (*Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.collections[name][id]
	if !ok {
		return nil, nil
	}
	return &Doc{ID: id, Data: cloneData(data)}, nil
}

func (m *MemoryStore) Write(ctx context.Context, name, id string, data map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	col, ok := m.collections[name]
	if !ok {
		col = make(map[string]map[string]any)
		m.collections[name] = col
	}
	col[id] = cloneData(data)
	return id, nil
}

func (m *MemoryStore) Update(ctx context.Context, name, id string, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyPatch(name, id, patch)
}

func (m *MemoryStore) UpdateIf(ctx context.Context, name, id string, patch map[string]any, field string, allowed []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.collections[name][id]
	if !ok {
		return ErrPreconditionFailed
	}
	if !matchFilter(data, In(field, allowed)) {
		return ErrPreconditionFailed
	}
	return m.applyPatch(name, id, patch)
}

func (m *MemoryStore) applyPatch(name, id string, patch map[string]any) error {
	col, ok := m.collections[name]
	if !ok {
		col = make(map[string]map[string]any)
		m.collections[name] = col
	}
	data, ok := col[id]
	if !ok {
		data = make(map[string]any)
		col[id] = data
	}
	for k, v := range patch {
		data[k] = v
	}
	return nil
}

// Probe always succeeds; the mirror lives in-process.
func (m *MemoryStore) Probe(ctx context.Context) bool {
	return true
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
