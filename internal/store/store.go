package store

import (
	"context"
	"errors"
)

// ErrPreconditionFailed is returned by UpdateIf when the guarded field no
// longer holds one of the allowed values at write time.
var ErrPreconditionFailed = errors.New("precondition failed")

// Filter is a single field predicate. Supported operators are "==" and "in".
type Filter struct {
	Field string
	Op    string
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: "==", Value: value}
}

// In builds a set-membership filter.
func In(field string, values []any) Filter {
	return Filter{Field: field, Op: "in", Value: values}
}

// Order sorts a collection fetch by a single field.
type Order struct {
	Field string
	Desc  bool
}

// Doc is an opaque record keyed by id. Data holds the document body with
// JSON-compatible value types.
type Doc struct {
	ID   string
	Data map[string]any
}

// DocStore is the uniform read/write contract over the document collections.
// FetchOne returns (nil, nil) when the document is absent; absence is not an
// error. Write with an empty id generates one and returns it.
type DocStore interface {
	FetchCollection(ctx context.Context, name string, filters []Filter, order *Order) ([]Doc, error)
	FetchOne(ctx context.Context, name, id string) (*Doc, error)
	Write(ctx context.Context, name, id string, data map[string]any) (string, error)
	Update(ctx context.Context, name, id string, patch map[string]any) error

	// UpdateIf applies patch only while field still holds one of the allowed
	// values, returning ErrPreconditionFailed otherwise. This is the
	// compare-and-swap primitive the accept path relies on.
	UpdateIf(ctx context.Context, name, id string, patch map[string]any, field string, allowed []any) error
}

// Prober reports whether the backing store is reachable. The fallback store
// uses it to answer online/offline queries without blocking callers.
type Prober interface {
	Probe(ctx context.Context) bool
}

func matchFilter(data map[string]any, f Filter) bool {
	v, ok := data[f.Field]
	if !ok {
		return false
	}
	switch f.Op {
	case "==":
		return valueEqual(v, f.Value)
	case "in":
		values, ok := f.Value.([]any)
		if !ok {
			return false
		}
		for _, want := range values {
			if valueEqual(v, want) {
				return true
			}
		}
	}
	return false
}

// valueEqual compares loosely across the numeric widenings JSON round trips
// introduce (int32 vs float64 and so on).
func valueEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as == bs
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func orderLess(a, b map[string]any, o *Order) bool {
	av, bv := a[o.Field], b[o.Field]
	less := false
	if af, ok := toFloat(av); ok {
		bf, _ := toFloat(bv)
		less = af < bf
	} else {
		as, _ := av.(string)
		bs, _ := bv.(string)
		less = as < bs
	}
	if o.Desc {
		return !less
	}
	return less
}
