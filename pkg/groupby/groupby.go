// Package groupby partitions a sequence of records into named buckets by a
// key derived from each record, returning the buckets in ascending key order.
package groupby

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidKey indicates that a key selector could not be applied to the
// input records. It is a programming error, not a runtime condition, so
// callers are expected to fail fast rather than recover.
var ErrInvalidKey = errors.New("groupby: invalid key selector")

// Group is one bucket of records sharing the same derived key.
type Group[K cmp.Ordered, T any] struct {
	Key   K
	Items []T
}

// By partitions items into groups keyed by key(item), with groups ordered by
// ascending key. Within a group, items keep their input order. Records are
// reorganized by reference only; nothing is copied or mutated. An empty or
// nil input yields a nil result.
func By[T any, K cmp.Ordered](items []T, key func(T) K) []Group[K, T] {
	if len(items) == 0 {
		return nil
	}

	byKey := make(map[K][]T)
	keys := make([]K, 0)
	for _, item := range items {
		k := key(item)
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], item)
	}

	slices.Sort(keys)

	groups := make([]Group[K, T], 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group[K, T]{Key: k, Items: byKey[k]})
	}
	return groups
}

// ByField partitions dynamic records by the value stored under the named
// field. The field name is resolved once into a key function before the
// grouping pass. It fails fast with an ErrInvalidKey-wrapped error when the
// field name is empty, a record lacks the field, or the field's value is not
// of type K.
func ByField[K cmp.Ordered](items []map[string]any, field string) ([]Group[K, map[string]any], error) {
	key, err := fieldKey[K](field)
	if err != nil {
		return nil, err
	}

	// Validate every record up front so the pure single-pass By never
	// observes a bad key.
	for i, rec := range items {
		if _, err := key(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	groups := By(items, func(rec map[string]any) K {
		k, _ := key(rec)
		return k
	})
	return groups, nil
}

// fieldKey resolves a field name into a key function.
func fieldKey[K cmp.Ordered](field string) (func(map[string]any) (K, error), error) {
	if field == "" {
		return nil, fmt.Errorf("%w: empty field name", ErrInvalidKey)
	}
	return func(rec map[string]any) (K, error) {
		var zero K
		v, ok := rec[field]
		if !ok {
			return zero, fmt.Errorf("%w: field %q missing", ErrInvalidKey, field)
		}
		k, ok := v.(K)
		if !ok {
			return zero, fmt.Errorf("%w: field %q has type %T, want %T", ErrInvalidKey, field, v, zero)
		}
		return k, nil
	}, nil
}
