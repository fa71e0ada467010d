package stack

// node is one stored value plus ownership of the rest of the chain.
// A nil next is the empty link.
type node[T any] struct {
	value T
	next  *node[T]
}

// take moves the link out of l and leaves it empty.
func take[T any](l **node[T]) *node[T] {
	n := *l
	*l = nil
	return n
}

// Stack is a LIFO container backed by a singly-linked chain of nodes.
// A zero value Stack is empty and ready to use.
type Stack[T any] struct {
	head *node[T]
}

// New returns an empty Stack. No node is allocated.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places value on top of the stack.
func (s *Stack[T]) Push(value T) {
	n := &node[T]{
		value: value,
		next:  take(&s.head),
	}
	s.head = n
}

// Pop removes the top value and returns it. The boolean is false, and the
// stack left unchanged, when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	n := take(&s.head)
	if n == nil {
		var zero T
		return zero, false
	}

	s.head = take(&n.next)

	value := n.value
	var zero T
	n.value = zero
	return value, true
}

// IsEmpty reports whether the stack holds no values.
func (s *Stack[T]) IsEmpty() bool {
	return s.head == nil
}

// Release drops every node in the stack and returns how many were dropped.
// The chain is unlinked iteratively: a node's next link is taken before the
// node itself is let go, so no node is ever dropped while still owning the
// remainder of the chain. The stack is empty afterwards and can be reused.
func (s *Stack[T]) Release() int {
	var released int
	var zero T

	cursor := take(&s.head)
	for cursor != nil {
		rest := take(&cursor.next)
		cursor.value = zero
		cursor = rest
		released++
	}

	return released
}
