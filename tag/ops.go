package tag

import (
	"fmt"

	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
)

// canAdopt checks the structural preconditions shared by every insert: the
// receiver accepts children, the child is detached, no cycle would form, and
// a list's element kind is respected.
func (n *Node) canAdopt(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", errs.ErrInternal)
	}
	if n.kind != format.KindCompound && n.kind != format.KindList {
		return errs.ErrWrongKind
	}
	if child.parent != nil {
		return errs.ErrHasParent
	}

	for anc := n; anc != nil; anc = anc.parent {
		if anc == child {
			return fmt.Errorf("%w: insert would create a cycle", errs.ErrInternal)
		}
	}

	if n.kind == format.KindList {
		if len(n.children) > 0 {
			if child.kind != n.children[0].kind {
				return errs.ErrListTypeMismatch
			}
		} else if n.elemKind != format.KindEnd && child.kind != n.elemKind {
			return errs.ErrListTypeMismatch
		}
	}

	return nil
}

// adopt finalises an insert at position i.
func (n *Node) adopt(child *Node, i int) {
	if n.kind == format.KindList {
		// List elements carry no name on the wire.
		child.name = ""
		child.named = false
		if len(n.children) == 0 {
			n.elemKind = child.kind
		}
	}

	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

// Append inserts a detached node as the last child.
func (n *Node) Append(child *Node) error {
	if err := n.canAdopt(child); err != nil {
		return err
	}

	n.adopt(child, len(n.children))

	return nil
}

// Prepend inserts a detached node as the first child.
func (n *Node) Prepend(child *Node) error {
	if err := n.canAdopt(child); err != nil {
		return err
	}

	n.adopt(child, 0)

	return nil
}

// InsertBefore inserts a detached node immediately before ref, which must be
// a current child of n.
func (n *Node) InsertBefore(child, ref *Node) error {
	i, err := n.indexOf(ref)
	if err != nil {
		return err
	}
	if err := n.canAdopt(child); err != nil {
		return err
	}

	n.adopt(child, i)

	return nil
}

// InsertAfter inserts a detached node immediately after ref, which must be a
// current child of n.
func (n *Node) InsertAfter(child, ref *Node) error {
	i, err := n.indexOf(ref)
	if err != nil {
		return err
	}
	if err := n.canAdopt(child); err != nil {
		return err
	}

	n.adopt(child, i+1)

	return nil
}

func (n *Node) indexOf(ref *Node) (int, error) {
	for i, c := range n.children {
		if c == ref {
			return i, nil
		}
	}

	return 0, errs.ErrOutOfRange
}

// ChildAt returns the i-th child.
func (n *Node) ChildAt(i int) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, errs.ErrOutOfRange
	}

	return n.children[i], nil
}

// ChildNamed returns the first child whose name equals name byte for byte,
// or nil when no child matches.
func (n *Node) ChildNamed(name string) *Node {
	for _, c := range n.children {
		if c.named && c.name == name {
			return c
		}
	}

	return nil
}

// Children returns the node's children in wire order. The slice is the
// node's backing storage, not a copy.
func (n *Node) Children() []*Node {
	return n.children
}

// RemoveAt detaches and discards the i-th child and its subtree.
func (n *Node) RemoveAt(i int) error {
	child, err := n.ChildAt(i)
	if err != nil {
		return err
	}

	child.Detach()

	return nil
}

// RemoveNamed detaches and discards the first child with the given name.
func (n *Node) RemoveNamed(name string) error {
	child := n.ChildNamed(name)
	if child == nil {
		return errs.ErrOutOfRange
	}

	child.Detach()

	return nil
}

// Detach removes n from its parent, transferring ownership of the subtree to
// the caller. Detaching a root is a no-op. Returns n for chaining.
func (n *Node) Detach() *Node {
	p := n.parent
	if p == nil {
		return n
	}

	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil

	return n
}

// Rename replaces the node's name. The empty string makes the name absent.
// Children of a List cannot be renamed: they carry no name on the wire.
func (n *Node) Rename(name string) error {
	if n.parent != nil && n.parent.kind == format.KindList {
		return errs.ErrListChildRename
	}

	n.name = name
	n.named = name != ""

	return nil
}
