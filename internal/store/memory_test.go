package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_WriteAndFetch(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	id, err := m.Write(ctx, "bookings", "", map[string]any{"status": "REQUESTED", "client_id": "c1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	doc, err := m.FetchOne(ctx, "bookings", id)
	assert.NoError(t, err)
	assert.Equal(t, "REQUESTED", doc.Data["status"])

	missing, err := m.FetchOne(ctx, "bookings", "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStore_Filters(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	m.Write(ctx, "bookings", "b1", map[string]any{"status": "CONFIRMED", "date": "2026-09-14"})
	m.Write(ctx, "bookings", "b2", map[string]any{"status": "CONFIRMED", "date": "2026-09-15"})
	m.Write(ctx, "bookings", "b3", map[string]any{"status": "REQUESTED", "date": "2026-09-14"})

	docs, err := m.FetchCollection(ctx, "bookings", []Filter{
		Eq("status", "CONFIRMED"), Eq("date", "2026-09-14"),
	}, nil)
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "b1", docs[0].ID)

	docs, err = m.FetchCollection(ctx, "bookings", []Filter{
		In("status", []any{"CONFIRMED", "REQUESTED"}),
	}, &Order{Field: "date", Desc: true})
	assert.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, "b2", docs[0].ID)
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	m.Write(ctx, "bookings", "b1", map[string]any{"status": "REQUESTED", "notes": "keep"})
	err := m.Update(ctx, "bookings", "b1", map[string]any{"status": "SEARCHING"})
	assert.NoError(t, err)

	doc, _ := m.FetchOne(ctx, "bookings", "b1")
	assert.Equal(t, "SEARCHING", doc.Data["status"])
	assert.Equal(t, "keep", doc.Data["notes"])
}

func TestMemoryStore_UpdateIf(t *testing.T) {
	ctx := context.Background()

	t.Run("Guard Holds", func(t *testing.T) {
		m := NewMemoryStore()
		m.Write(ctx, "bookings", "b1", map[string]any{"status": "OFFERED"})

		err := m.UpdateIf(ctx, "bookings", "b1",
			map[string]any{"status": "CONFIRMED", "interpreter_id": "i1"},
			"status", []any{"OFFERED", "SEARCHING"})
		assert.NoError(t, err)

		doc, _ := m.FetchOne(ctx, "bookings", "b1")
		assert.Equal(t, "CONFIRMED", doc.Data["status"])
		assert.Equal(t, "i1", doc.Data["interpreter_id"])
	})

	t.Run("Guard Fails", func(t *testing.T) {
		m := NewMemoryStore()
		m.Write(ctx, "bookings", "b1", map[string]any{"status": "CONFIRMED", "interpreter_id": "i1"})

		err := m.UpdateIf(ctx, "bookings", "b1",
			map[string]any{"status": "CONFIRMED", "interpreter_id": "i2"},
			"status", []any{"OFFERED", "SEARCHING"})
		assert.Equal(t, ErrPreconditionFailed, err)

		doc, _ := m.FetchOne(ctx, "bookings", "b1")
		assert.Equal(t, "i1", doc.Data["interpreter_id"])
	})

	t.Run("Missing Document", func(t *testing.T) {
		m := NewMemoryStore()
		err := m.UpdateIf(ctx, "bookings", "nope", map[string]any{"x": 1}, "status", []any{"OFFERED"})
		assert.Equal(t, ErrPreconditionFailed, err)
	})

	t.Run("Concurrent Accept Single Winner", func(t *testing.T) {
		m := NewMemoryStore()
		m.Write(ctx, "bookings", "b1", map[string]any{"status": "OFFERED"})

		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				err := m.UpdateIf(ctx, "bookings", "b1",
					map[string]any{"status": "CONFIRMED", "interpreter_id": n},
					"status", []any{"OFFERED", "SEARCHING"})
				if err == nil {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, winners)
	})
}

func TestMemoryStore_FetchReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	m.Write(ctx, "bookings", "b1", map[string]any{"status": "REQUESTED"})
	doc, _ := m.FetchOne(ctx, "bookings", "b1")
	doc.Data["status"] = "mutated"

	fresh, _ := m.FetchOne(ctx, "bookings", "b1")
	assert.Equal(t, "REQUESTED", fresh.Data["status"])
}
