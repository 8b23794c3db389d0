// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

// Stack is a LIFO container. The zero value is an empty stack ready to use.
// Mini mode keeps its screen history on one so "back" can unwind navigation.
type Stack[T any] struct {
	items []T
}

// Push places item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top of the stack.
// An empty stack yields the zero value.
func (s *Stack[T]) Pop() (item T) {
	if last := len(s.items) - 1; last >= 0 {
		item, s.items = s.items[last], s.items[:last]
	}
	return item
}

// Peek returns the top of the stack without removing it.
// An empty stack yields the zero value.
func (s *Stack[T]) Peek() (item T) {
	if last := len(s.items) - 1; last >= 0 {
		item = s.items[last]
	}
	return item
}

// Len reports how many elements the stack holds.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear drops every element, resetting the stack to empty.
func (s *Stack[T]) Clear() {
	s.items = nil
}
