// internal/runutil/lru_set.go
package runutil

import "container/list"

// DefaultSetCapacity bounds a set created with a non-positive capacity.
const DefaultSetCapacity = 100_000

// LRUSet is a size-bounded set with O(1) hit/insert. The least recently
// seen key is evicted first. Not safe for concurrent use.
type LRUSet[K comparable] struct {
	cap int
	ll  *list.List
	m   map[K]*list.Element
}

func NewLRUSet[K comparable](capacity int) *LRUSet[K] {
	if capacity <= 0 {
		capacity = DefaultSetCapacity
	}
	return &LRUSet[K]{cap: capacity, ll: list.New(), m: make(map[K]*list.Element)}
}

// Add inserts k; returns true if it was already present.
func (s *LRUSet[K]) Add(k K) bool {
	if e, ok := s.m[k]; ok {
		s.ll.MoveToFront(e)
		return true
	}
	s.m[k] = s.ll.PushFront(k)
	if s.ll.Len() > s.cap {
		if tail := s.ll.Back(); tail != nil {
			s.ll.Remove(tail)
			delete(s.m, tail.Value.(K))
		}
	}
	return false
}

// Len is the number of keys held.
func (s *LRUSet[K]) Len() int { return s.ll.Len() }
