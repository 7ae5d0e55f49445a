// Package ordered provides an insertion-ordered map.
//
// Iteration follows first-insertion order. Setting an existing key replaces
// its value in place without moving it, and Upsert lets callers merge into
// an existing value instead of replacing it.
package ordered

import "iter"

// Map is an insertion-ordered map. The zero value is ready to use.
// A Map is not safe for concurrent mutation; concurrent reads are fine.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New returns an empty Map with room for n entries.
func New[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0, n),
		values: make(map[K]V, n),
	}
}

// Set stores v under k. A new key is appended; an existing key keeps its
// position and has its value replaced.
func (m *Map[K, V]) Set(k K, v V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Upsert inserts v when k is new. When k exists, the stored value becomes
// merge(existing, v) and keeps its position. It reports whether k was new.
func (m *Map[K, V]) Upsert(k K, v V, merge func(existing, incoming V) V) bool {
	if existing, ok := m.Get(k); ok {
		m.values[k] = merge(existing, v)
		return false
	}
	m.Set(k, v)
	return true
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key insertion order.
func (m *Map[K, V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// All iterates over entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}
