package collections

// Stack is a LIFO used to simulate recursion. It remembers the deepest it has
// been since the last Reset so callers can check how much state a walk held.
type Stack[T any] struct {
	Items []T
	peak  int
}

func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{Items: make([]T, 0, capacity)}
}

func (s Stack[T]) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s Stack[T]) Len() int {
	return len(s.Items)
}

// Peak is the largest number of items held at once.
func (s Stack[T]) Peak() int {
	return s.peak
}

func (s *Stack[T]) Push(item T) {
	s.Items = append(s.Items, item)
	if len(s.Items) > s.peak {
		s.peak = len(s.Items)
	}
}

// Pop removes and returns the top item. Popping an empty stack returns the zero value.
func (s *Stack[T]) Pop() T {
	var zero T
	if len(s.Items) == 0 {
		return zero
	}
	top := s.Items[len(s.Items)-1]
	s.Items[len(s.Items)-1] = zero
	s.Items = s.Items[:len(s.Items)-1]
	return top
}

// Top returns the top item without removing it, or the zero value when empty.
func (s *Stack[T]) Top() T {
	var zero T
	if len(s.Items) == 0 {
		return zero
	}
	return s.Items[len(s.Items)-1]
}

func (s *Stack[T]) Reset() {
	clear(s.Items)
	s.Items = s.Items[:0]
	s.peak = 0
}
