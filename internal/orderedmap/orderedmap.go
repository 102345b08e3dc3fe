// Package orderedmap provides a small insertion-ordered map that
// rejects duplicate keys. The writer tracks what has been emitted on
// the currently open start tag with it: attribute order matters to
// downstream readers, and a duplicate attribute name or namespace
// prefix has to be caught before the engine writes anything.
package orderedmap

import (
	"errors"
	"iter"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

type Map[K comparable, V any] struct {
	order  []K
	values map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Set records the pair, reporting ErrDuplicateEntry if the key is
// already present.
func (m *Map[K, V]) Set(key K, value V) error {
	if _, exists := m.values[key]; exists {
		return ErrDuplicateEntry
	}
	m.order = append(m.order, key)
	m.values[key] = value
	return nil
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map[K, V]) Len() int {
	return len(m.order)
}

// Range iterates the entries in insertion order.
func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.order {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Reset drops all entries but keeps the allocated storage, so one
// Map can serve every start tag of a document.
func (m *Map[K, V]) Reset() {
	clear(m.values)
	m.order = m.order[:0]
}
