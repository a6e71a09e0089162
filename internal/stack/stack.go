// Package stack provides a LIFO stack with an optional depth limit.
package stack

// Stack holds items in push order. A positive limit caps its depth.
type Stack[T any] struct {
	items []T
	limit int
}

// New returns an empty stack holding at most limit items; limit <= 0 means
// no limit.
func New[T any](limit int) *Stack[T] {
	return &Stack[T]{limit: limit}
}

// Push places item on top. It reports false, leaving the stack unchanged,
// when the stack is already at its limit.
func (s *Stack[T]) Push(item T) bool {
	if s.Full() {
		return false
	}
	s.items = append(s.items, item)
	return true
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	index := len(s.items) - 1
	item := s.items[index]
	s.items = s.items[:index]
	return item, true
}

func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	return s.items[len(s.items)-1], true
}

// PeekRef allows modifying the top element in place.
// The pointer is invalidated by the next Push.
func (s *Stack[T]) PeekRef() *T {
	if len(s.items) == 0 {
		return nil
	}

	return &s.items[len(s.items)-1]
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Size() int {
	return len(s.items)
}

// Full reports whether a Push would be rejected.
func (s *Stack[T]) Full() bool {
	return s.limit > 0 && len(s.items) >= s.limit
}

// Limit returns the depth limit, 0 when unbounded.
func (s *Stack[T]) Limit() int {
	return max(s.limit, 0)
}

// Reset empties the stack and sets a new limit, keeping the backing array
// so a reused stack stops allocating once it has grown to its working depth.
func (s *Stack[T]) Reset(limit int) {
	clear(s.items)
	s.items = s.items[:0]
	s.limit = limit
}
