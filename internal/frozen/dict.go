package frozen

import (
	"cmp"
	"iter"
	"slices"
)

// Dict is a mutable, insertion-ordered mapping. Build one up and call
// Freeze when it is complete.
type Dict[K cmp.Ordered, V any] struct {
	entries map[K]V
	order   []K
}

var _ MutableMapping[string, int] = (*Dict[string, int])(nil)

// NewDict returns an empty Dict.
func NewDict[K cmp.Ordered, V any]() *Dict[K, V] {
	return &Dict[K, V]{entries: make(map[K]V)}
}

// Get returns the value stored under k.
func (d *Dict[K, V]) Get(k K) (V, bool) {
	v, ok := d.entries[k]
	return v, ok
}

// Has reports whether k is present.
func (d *Dict[K, V]) Has(k K) bool {
	_, ok := d.entries[k]
	return ok
}

// Len returns the number of entries.
func (d *Dict[K, V]) Len() int { return len(d.order) }

// Keys returns keys in insertion order.
func (d *Dict[K, V]) Keys() []K { return slices.Clone(d.order) }

// All yields entries in insertion order.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range d.order {
			if !yield(k, d.entries[k]) {
				return
			}
		}
	}
}

// Set stores v under k. A new key goes to the end of the order; an
// existing key keeps its position. The zero Dict is ready to use.
func (d *Dict[K, V]) Set(k K, v V) {
	if d.entries == nil {
		d.entries = make(map[K]V)
	}
	if _, ok := d.entries[k]; !ok {
		d.order = append(d.order, k)
	}
	d.entries[k] = v
}

// Delete removes k and reports whether it was present.
func (d *Dict[K, V]) Delete(k K) bool {
	if _, ok := d.entries[k]; !ok {
		return false
	}
	delete(d.entries, k)
	d.order = slices.DeleteFunc(d.order, func(x K) bool { return x == k })
	return true
}

// Pop removes k and returns its value.
func (d *Dict[K, V]) Pop(k K) (V, bool) {
	v, ok := d.entries[k]
	if ok {
		d.Delete(k)
	}
	return v, ok
}

// PopItem removes the most recently inserted entry.
func (d *Dict[K, V]) PopItem() (K, V, bool) {
	if len(d.order) == 0 {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	k := d.order[len(d.order)-1]
	v := d.entries[k]
	d.order = d.order[:len(d.order)-1]
	delete(d.entries, k)
	return k, v, true
}

// SetDefault returns the value under k, storing v first if k is absent.
func (d *Dict[K, V]) SetDefault(k K, v V) V {
	if cur, ok := d.entries[k]; ok {
		return cur
	}
	d.Set(k, v)
	return v
}

// Update copies every entry of other into d, in other's iteration order.
func (d *Dict[K, V]) Update(other Mapping[K, V]) {
	for k, v := range other.All() {
		d.Set(k, v)
	}
}

// Freeze returns an immutable snapshot. Later changes to d do not affect it.
func (d *Dict[K, V]) Freeze() Map[K, V] {
	return FromMap(d.entries)
}
