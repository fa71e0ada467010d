package stack

type int32Node struct {
	value int32
	next  *int32Node
}

func takeInt32(l **int32Node) *int32Node {
	n := *l
	*l = nil
	return n
}

// Int32Stack is the int32-only form of Stack. It follows the same ownership
// rules and teardown as Stack[int32] and exists for callers that want a
// concrete, non-generic type.
type Int32Stack struct {
	head *int32Node
}

// NewInt32 returns an empty Int32Stack.
func NewInt32() *Int32Stack {
	return &Int32Stack{}
}

func (s *Int32Stack) Push(value int32) {
	n := &int32Node{
		value: value,
		next:  takeInt32(&s.head),
	}
	s.head = n
}

func (s *Int32Stack) Pop() (int32, bool) {
	n := takeInt32(&s.head)
	if n == nil {
		return 0, false
	}

	s.head = takeInt32(&n.next)
	return n.value, true
}

func (s *Int32Stack) IsEmpty() bool {
	return s.head == nil
}

// Release drops the whole chain one node at a time. See Stack.Release.
func (s *Int32Stack) Release() int {
	var released int

	cursor := takeInt32(&s.head)
	for cursor != nil {
		cursor = takeInt32(&cursor.next)
		released++
	}

	return released
}
