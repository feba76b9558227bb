package frozen

import "iter"

// Mapping is the read-only capability set: lookup, containment, length and
// iteration.
type Mapping[K comparable, V any] interface {
	Get(k K) (V, bool)
	Has(k K) bool
	Len() int
	Keys() []K
	All() iter.Seq2[K, V]
}

// MutableMapping adds the mutating operations.
type MutableMapping[K comparable, V any] interface {
	Mapping[K, V]
	Set(k K, v V)
	Delete(k K) bool
	Pop(k K) (V, bool)
	PopItem() (K, V, bool)
	SetDefault(k K, v V) V
	Update(other Mapping[K, V])
}

// Assign sets m[k] = v.
func Assign[K comparable, V any](m Mapping[K, V], k K, v V) error {
	mm, ok := m.(MutableMapping[K, V])
	if !ok {
		return unsupported(m, "item assignment")
	}
	mm.Set(k, v)
	return nil
}

// Delete removes k from m.
func Delete[K comparable, V any](m Mapping[K, V], k K) error {
	mm, ok := m.(MutableMapping[K, V])
	if !ok {
		return unsupported(m, "item deletion")
	}
	if !mm.Delete(k) {
		return ErrKeyNotFound
	}
	return nil
}

// Pop removes k from m and returns its value.
func Pop[K comparable, V any](m Mapping[K, V], k K) (V, error) {
	var zero V
	mm, ok := m.(MutableMapping[K, V])
	if !ok {
		return zero, unsupported(m, "pop")
	}
	v, ok := mm.Pop(k)
	if !ok {
		return zero, ErrKeyNotFound
	}
	return v, nil
}

// PopItem removes and returns the most recently inserted entry.
func PopItem[K comparable, V any](m Mapping[K, V]) (K, V, error) {
	var (
		zk K
		zv V
	)
	mm, ok := m.(MutableMapping[K, V])
	if !ok {
		return zk, zv, unsupported(m, "popitem")
	}
	k, v, ok := mm.PopItem()
	if !ok {
		return zk, zv, ErrKeyNotFound
	}
	return k, v, nil
}

// SetDefault returns m[k], storing v first if k is absent.
func SetDefault[K comparable, V any](m Mapping[K, V], k K, v V) (V, error) {
	mm, ok := m.(MutableMapping[K, V])
	if !ok {
		var zero V
		return zero, unsupported(m, "setdefault")
	}
	return mm.SetDefault(k, v), nil
}

// Update copies every entry of other into m.
func Update[K comparable, V any](m Mapping[K, V], other Mapping[K, V]) error {
	mm, ok := m.(MutableMapping[K, V])
	if !ok {
		return unsupported(m, "update")
	}
	mm.Update(other)
	return nil
}
