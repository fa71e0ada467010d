// Package stack provides singly-linked LIFO containers.
//
// Every node in a stack has exactly one owner: either the stack's head or the
// next field of one other node. Links are moved with take, which returns the
// current pointer and clears its source, so a link is never held by two
// fields at once.
//
// A stack is torn down with Release, which unlinks the chain one node at a
// time. Each node has its next field cleared before it is dropped, so the
// work stays flat regardless of how long the chain is.
//
// Stacks are not safe for concurrent use.
package stack
