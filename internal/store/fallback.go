package store

import (
	"context"
	"time"

	"linguabook-backend/internal/logger"
)

// FallbackStore tries the remote store first and silently degrades to the
// in-process mirror when the remote is unreachable. Successful remote reads
// and writes are mirrored locally so later offline reads stay consistent
// within the process lifetime. Callers only see an error when both paths
// fail.
type FallbackStore struct {
	remote       DocStore
	local        *MemoryStore
	probeTimeout time.Duration
}

func NewFallbackStore(remote DocStore, local *MemoryStore, probeTimeout time.Duration) *FallbackStore {
	if probeTimeout <= 0 {
		probeTimeout = 1500 * time.Millisecond
	}
	return &FallbackStore{remote: remote, local: local, probeTimeout: probeTimeout}
}

func (s *FallbackStore) FetchCollection(ctx context.Context, name string, filters []Filter, order *Order) ([]Doc, error) {
	docs, err := s.remote.FetchCollection(ctx, name, filters, order)
	if err != nil {
		logger.Warn("Remote fetch failed, using local mirror", "collection", name, "error", err)
		return s.local.FetchCollection(ctx, name, filters, order)
	}
	for _, d := range docs {
		_, _ = s.local.Write(ctx, name, d.ID, d.Data)
	}
	return docs, nil
}

func (s *FallbackStore) FetchOne(ctx context.Context, name, id string) (*Doc, error) {
	doc, err := s.remote.FetchOne(ctx, name, id)
	if err != nil {
		logger.Warn("Remote fetch failed, using local mirror", "collection", name, "id", id, "error", err)
		return s.local.FetchOne(ctx, name, id)
	}
	if doc != nil {
		_, _ = s.local.Write(ctx, name, doc.ID, doc.Data)
	}
	return doc, nil
}

func (s *FallbackStore) Write(ctx context.Context, name, id string, data map[string]any) (string, error) {
	written, err := s.remote.Write(ctx, name, id, data)
	if err != nil {
		logger.Warn("Remote write failed, writing to local mirror", "collection", name, "error", err)
		return s.local.Write(ctx, name, id, data)
	}
	_, _ = s.local.Write(ctx, name, written, data)
	return written, nil
}

func (s *FallbackStore) Update(ctx context.Context, name, id string, patch map[string]any) error {
	if err := s.remote.Update(ctx, name, id, patch); err != nil {
		logger.Warn("Remote update failed, updating local mirror", "collection", name, "id", id, "error", err)
		return s.local.Update(ctx, name, id, patch)
	}
	_ = s.local.Update(ctx, name, id, patch)
	return nil
}

func (s *FallbackStore) UpdateIf(ctx context.Context, name, id string, patch map[string]any, field string, allowed []any) error {
	err := s.remote.UpdateIf(ctx, name, id, patch, field, allowed)
	if err == nil {
		_ = s.local.Update(ctx, name, id, patch)
		return nil
	}
	if err == ErrPreconditionFailed {
		// A failed guard is an answer, not an outage.
		return err
	}
	logger.Warn("Remote conditional update failed, trying local mirror", "collection", name, "id", id, "error", err)
	return s.local.UpdateIf(ctx, name, id, patch, field, allowed)
}

// Probe reports whether the remote store answers within the configured
// timeout. The mirror keeps serving either way; this only feeds the
// online/offline indicator.
func (s *FallbackStore) Probe(ctx context.Context) bool {
	p, ok := s.remote.(Prober)
	if !ok {
		return true
	}
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	return p.Probe(probeCtx)
}
