package models

import (
	"fmt"
	"math"
	"sort"

	"github.com/desertthunder/hbnb/internal/shared"
)

// FieldSetter assigns one decoded JSON value to a field of m.
type FieldSetter[T any] func(m T, v any) error

// FieldSet is the allow-list of mutable fields for an entity type, keyed by JSON name.
type FieldSet[T any] map[string]FieldSetter[T]

// Apply sets every allow-listed key of updates on m, in key order.
//
// Keys that are not in the set are ignored. The first value of the wrong type aborts the update,
// leaving earlier fields applied; callers should apply to a copy or discard m on error.
func (fs FieldSet[T]) Apply(m T, updates map[string]any) error {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		if _, ok := fs[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fs[k](m, updates[k]); err != nil {
			return fmt.Errorf("%w: %s: %v", shared.ErrInvalidInput, k, err)
		}
	}
	return nil
}

// Names returns the allow-listed field names, sorted.
func (fs FieldSet[T]) Names() []string {
	names := make([]string, 0, len(fs))
	for k := range fs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func stringField[T any](set func(T, string) error) FieldSetter[T] {
	return func(m T, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		return set(m, s)
	}
}

func intField[T any](set func(T, int)) FieldSetter[T] {
	return func(m T, v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("must not be negative")
		}
		set(m, n)
		return nil
	}
}

// floatField accepts numbers and null; null clears the value.
func floatField[T any](set func(T, *float64)) FieldSetter[T] {
	return func(m T, v any) error {
		switch n := v.(type) {
		case nil:
			set(m, nil)
		case float64:
			set(m, &n)
		case int:
			f := float64(n)
			set(m, &f)
		default:
			return fmt.Errorf("expected number, got %T", v)
		}
		return nil
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}
