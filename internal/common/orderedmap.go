package common

// OrderedMap is a map that remembers the order in which keys were first inserted.
// Replacing the value of an existing key keeps its position.
type OrderedMap[K comparable, V any] struct {
	keys  []K
	items map[K]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{items: make(map[K]V)}
}

// Set inserts or replaces the value stored under key.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.items[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// Delete removes key. It reports whether the key was present.
func (m *OrderedMap[K, V]) Delete(key K) bool {
	if _, ok := m.items[key]; !ok {
		return false
	}

	delete(m.items, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}

	return true
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)

	return out
}

// Values returns the values in key insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}

	return out
}
