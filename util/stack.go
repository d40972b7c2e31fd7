package util

// Stack is a LIFO, used by the prompt mode to walk back through its states.
type Stack[T any] []T

func (s *Stack[T]) Push(item T) {
	*s = append(*s, item)
}

// Pop reports false when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(*s) == 0 {
		return zero, false
	}

	last := len(*s) - 1
	item := (*s)[last]
	*s = (*s)[:last]
	return item, true
}

func (s Stack[T]) Len() int {
	return len(s)
}
