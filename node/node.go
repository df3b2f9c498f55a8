package node

import "iter"

// Node is a single element of a document chain. It owns its children and the
// siblings that follow it; no node is reachable from two chains unless a
// caller links it there explicitly.
//
// Accessors are safe to call on a nil *Node and report an empty chain.
type Node struct {
	value    string
	children *Node
	next     *Node
}

// New returns a childless node with the given value.
func New(value string) *Node { return &Node{value: value} }

// NewChain links the given chains end to end and returns the head of the
// result. Nil arguments are skipped.
func NewChain(nodes ...*Node) *Node {
	var head, tail *Node

	for _, n := range nodes {
		if n == nil {
			continue
		}

		if head == nil {
			head = n
		} else {
			tail.next = n
		}

		tail = n.Last()
	}

	return head
}

// WithChildren replaces n's children with the given nodes chained in order
// and returns n.
func (n *Node) WithChildren(children ...*Node) *Node {
	n.children = NewChain(children...)

	return n
}

// IsPropertyName reports whether value names a property rather than a bare
// value.
func IsPropertyName(value string) bool {
	return value != "" && value[0] >= 'a' && value[0] <= 'z'
}

func (n *Node) Value() string {
	if n == nil {
		return ""
	}

	return n.value
}

func (n *Node) SetValue(value string) { n.value = value }

// IsProperty reports whether n's value begins with an ASCII lowercase letter.
func (n *Node) IsProperty() bool { return n != nil && IsPropertyName(n.value) }

func (n *Node) Children() *Node {
	if n == nil {
		return nil
	}

	return n.children
}

func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}

	return n.next
}

func (n *Node) HasChildren() bool { return n != nil && n.children != nil }

// Child returns the first child property named name, or nil.
func (n *Node) Child(name string) *Node { return n.Children().FindProperty(name) }

// FindProperty returns the first property named name among n and its
// following siblings, or nil.
func (n *Node) FindProperty(name string) *Node {
	for c := n; c != nil; c = c.next {
		if c.IsProperty() && c.value == name {
			return c
		}
	}

	return nil
}

// Len returns the number of nodes in the chain starting at n.
func (n *Node) Len() int {
	var count int

	for c := n; c != nil; c = c.next {
		count++
	}

	return count
}

// All returns an iterator over n and its following siblings.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n; c != nil; c = c.next {
			if !yield(c) {
				return
			}
		}
	}
}

// Last returns the final node of the chain starting at n.
func (n *Node) Last() *Node {
	if n == nil {
		return nil
	}

	for n.next != nil {
		n = n.next
	}

	return n
}

// Equal reports whether the chains starting at n and other have the same
// values and structure.
func (n *Node) Equal(other *Node) bool {
	for n != nil && other != nil {
		if n.value != other.value || !n.children.Equal(other.children) {
			return false
		}

		n, other = n.next, other.next
	}

	return n == nil && other == nil
}

// Clone returns a deep copy of n and its children, without siblings.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	return &Node{value: n.value, children: n.children.CloneChain()}
}

// CloneChain returns a deep copy of n and all of its following siblings.
func (n *Node) CloneChain() *Node {
	var head, tail *Node

	for c := n; c != nil; c = c.next {
		dup := c.Clone()

		if head == nil {
			head = dup
		} else {
			tail.next = dup
		}

		tail = dup
	}

	return head
}

// CloneChildren returns a deep copy of n's children.
func (n *Node) CloneChildren() *Node { return n.Children().CloneChain() }

// Replace overwrites n's value and children with copies of with's. If with
// is followed by siblings, copies of them are inserted after n, ahead of n's
// original next sibling. Replace returns the last node of the replacement so
// that callers can continue walking after it. A nil with leaves n unchanged.
func (n *Node) Replace(with *Node) *Node {
	if with == nil {
		return n
	}

	n.value = with.value
	n.children = with.children.CloneChain()

	if with.next == nil {
		return n
	}

	extra := with.next.CloneChain()
	last := extra.Last()
	n.InsertNext(extra)

	return last
}

// RemoveChildren detaches and returns n's children.
func (n *Node) RemoveChildren() *Node {
	c := n.children
	n.children = nil

	return c
}

// SetChildren replaces n's children with chain.
func (n *Node) SetChildren(chain *Node) { n.children = chain }

// SetNext replaces everything after n with chain.
func (n *Node) SetNext(chain *Node) { n.next = chain }

// InsertNext splices chain between n and its next sibling.
func (n *Node) InsertNext(chain *Node) {
	if chain == nil {
		return
	}

	chain.Last().next = n.next
	n.next = chain
}

// ChopNext detaches and returns the siblings following n.
func (n *Node) ChopNext() *Node {
	t := n.next
	n.next = nil

	return t
}
