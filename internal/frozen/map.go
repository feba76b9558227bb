package frozen

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/roach88/fluxutil/internal/ir"
)

// Pair is one key-value entry used to build a Map.
type Pair[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// P is shorthand for Pair.
func P[K cmp.Ordered, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// Map is an immutable mapping. The zero value is an empty map.
//
// Keys are kept in sorted order so iteration and hashing never depend on
// how the map was built.
type Map[K cmp.Ordered, V any] struct {
	entries map[K]V
	keys    []K
}

var (
	_ Mapping[string, int] = Map[string, int]{}
	_ ir.Canonicalizer     = Map[string, int]{}
)

// New builds a Map from pairs. Later pairs override earlier ones.
func New[K cmp.Ordered, V any](pairs ...Pair[K, V]) Map[K, V] {
	return FromMap(nil, pairs...)
}

// FromMap builds a Map from a copy of src, then applies overrides in order.
func FromMap[K cmp.Ordered, V any](src map[K]V, overrides ...Pair[K, V]) Map[K, V] {
	entries := make(map[K]V, len(src)+len(overrides))
	for k, v := range src {
		entries[k] = v
	}
	for _, p := range overrides {
		entries[p.Key] = p.Value
	}
	keys := make([]K, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return Map[K, V]{entries: entries, keys: keys}
}

// Get returns the value for k.
func (m Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.entries[k]
	return v, ok
}

// Has reports whether k is present.
func (m Map[K, V]) Has(k K) bool {
	_, ok := m.entries[k]
	return ok
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in sorted order. The slice is a copy.
func (m Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// All iterates entries in key order.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.entries[k]) {
				return
			}
		}
	}
}

// ToMap returns a mutable copy of the contents.
func (m Map[K, V]) ToMap() map[K]V {
	out := make(map[K]V, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same keys with deeply equal values.
func (m Map[K, V]) Equal(other Map[K, V]) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		if !reflect.DeepEqual(m.entries[k], other.entries[k]) {
			return false
		}
	}
	return true
}

// CanonicalValue renders the map as a key-sorted array of [key, value]
// pairs. Keys are unique, so the key order alone fixes the sequence.
func (m Map[K, V]) CanonicalValue() (ir.Value, error) {
	arr := make(ir.Array, 0, len(m.keys))
	for _, k := range m.keys {
		kv, err := ir.FromGo(k)
		if err != nil {
			return nil, &UnhashableError{Key: fmt.Sprint(k), Err: err}
		}
		vv, err := ir.FromGo(m.entries[k])
		if err != nil {
			return nil, &UnhashableError{Key: fmt.Sprint(k), Err: err}
		}
		arr = append(arr, ir.Array{kv, vv})
	}
	return arr, nil
}

// Hash returns a content hash of the map.
//
// Every value must have a canonical form (strings, bools, numbers, ir
// values, nested Maps, slices and string-keyed maps of those). Anything
// else, including nil values, fails here with *UnhashableError rather than
// at construction.
func (m Map[K, V]) Hash() (string, error) {
	v, err := m.CanonicalValue()
	if err != nil {
		return "", err
	}
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return "", &UnhashableError{Err: err}
	}
	return ir.HashWithDomain(ir.DomainFrozen, data), nil
}

// MustHash is like Hash but panics on error.
func (m Map[K, V]) MustHash() string {
	h, err := m.Hash()
	if err != nil {
		panic(err)
	}
	return h
}

// String renders the map in key order, e.g. Map{a: 1, b: 2}.
func (m Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("Map{")
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", k, m.entries[k])
	}
	b.WriteByte('}')
	return b.String()
}
