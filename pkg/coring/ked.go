// Copyright 2025 Certen Protocol
//
// Ked is the key event dict: an insertion-order-preserving mapping. A key
// event's first field is "vs" per spec.md 3 ("Key event dict") and the
// Design Notes' "First-12-bytes sniff" requirement; Ked keeps whatever
// order fields were set in through every encoding this package supports,
// but does not itself require "vs" to be first.
//
// Field semantics beyond "vs" belong to higher layers (spec.md 1); Ked is
// deliberately a generic ordered container, not a typed event schema.

package coring

import (
	"encoding/json"
	"fmt"
)

// Ked is an ordered string-keyed mapping. Values may be nil, bool, string,
// any Go numeric type, []any (an ordered sequence, elements of which may
// themselves be *Ked), or *Ked (a nested mapping).
type Ked struct {
	keys   []string
	values map[string]any
}

// NewKed returns an empty Ked.
func NewKed() *Ked {
	return &Ked{values: make(map[string]any)}
}

// Set assigns key to value, appending key to the end of the field order if
// it is new, or updating the value in place if key already exists. Returns
// the receiver so construction can be chained, e.g.:
//
//	ked := coring.NewKed().Set("vs", vs).Set("id", id).Set("sn", sn)
func (k *Ked) Set(key string, value any) *Ked {
	if _, exists := k.values[key]; !exists {
		k.keys = append(k.keys, key)
	}
	k.values[key] = value
	return k
}

// Get returns the value at key and whether it was present.
func (k *Ked) Get(key string) (any, bool) {
	v, ok := k.values[key]
	return v, ok
}

// Has reports whether key is present.
func (k *Ked) Has(key string) bool {
	_, ok := k.values[key]
	return ok
}

// Keys returns the field names in insertion order. The caller must not
// mutate the returned slice.
func (k *Ked) Keys() []string { return k.keys }

// Len returns the number of fields.
func (k *Ked) Len() int { return len(k.keys) }

// MustString is a convenience accessor for string-valued fields, used
// internally where the caller already knows the field's shape (e.g. "vs").
// Returns an error, not a panic, if the field is missing or not a string.
func (k *Ked) MustString(key string) (string, error) {
	v, ok := k.values[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string, got %T", key, v)
	}
	return s, nil
}

// Equal reports whether k and other hold the same keys and values,
// recursively, ignoring field order. Mirrors Python dict equality, which
// spec.md's round-trip properties ("deserialize(serialize(ked,k)) == ked")
// are stated in terms of.
func (k *Ked) Equal(other *Ked) bool {
	if k == nil || other == nil {
		return k == other
	}
	if len(k.keys) != len(other.keys) {
		return false
	}
	for key, v := range k.values {
		ov, ok := other.values[key]
		if !ok || !valuesEqual(v, ov) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *Ked:
		bv, ok := b.(*Ked)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return numericAwareEqual(a, b)
	}
}

// numericAwareEqual compares scalars, treating any two numeric types as
// equal if their float64 values match. Different wire kinds decode numbers
// into different Go types (JSON -> json.Number, CBOR -> int64/uint64,
// MGPK -> int64/uint64), so a strict type-and-value comparison would fail
// cross-kind round trips even though the logical value is identical.
func numericAwareEqual(a, b any) bool {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
