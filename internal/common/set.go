package common

// Set is an insertion-ordered set.
type Set[T comparable] struct {
	m *OrderedMap[T, struct{}]
}

// NewSet creates a set holding the given items.
func NewSet[T comparable](items ...T) *Set[T] {
	s := &Set[T]{m: NewOrderedMap[T, struct{}]()}
	for _, it := range items {
		s.Add(it)
	}

	return s
}

// Add inserts item. It reports false when the item was already present.
func (s *Set[T]) Add(item T) bool {
	if s.m.Has(item) {
		return false
	}

	s.m.Set(item, struct{}{})

	return true
}

// Contains reports whether item is in the set.
func (s *Set[T]) Contains(item T) bool {
	return s.m.Has(item)
}

// Len returns the number of items.
func (s *Set[T]) Len() int {
	return s.m.Len()
}

// Items returns the items in insertion order.
func (s *Set[T]) Items() []T {
	return s.m.Keys()
}
