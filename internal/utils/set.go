package utils

import "sync"

type null = struct{}

// BoundedSet is a concurrent set with insertion-order eviction once cap is
// reached. Used to remember recently processed update ids.
type BoundedSet[T comparable] struct {
	mu    sync.Mutex
	m     map[T]null
	order []T
	cap   int
}

func NewBoundedSet[T comparable](capacity int) *BoundedSet[T] {
	if capacity <= 0 {
		capacity = 128
	}
	return &BoundedSet[T]{
		m:   make(map[T]null, capacity),
		cap: capacity,
	}
}

// Add inserts key and reports whether it was not already present. The oldest
// key is evicted when the set is full.
func (s *BoundedSet[T]) Add(key T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return false
	}
	if len(s.order) >= s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.m, oldest)
	}
	s.m[key] = null{}
	s.order = append(s.order, key)
	return true
}

func (s *BoundedSet[T]) Has(key T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[key]
	return ok
}

func (s *BoundedSet[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
