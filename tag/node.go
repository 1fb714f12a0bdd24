// Package tag implements the in-memory NBT tag tree.
//
// A Node carries one tag: its kind, an optional name, and the payload variant
// the kind implies. Nodes are created detached by the builder functions and
// attached to a Compound or List parent through the structural operations in
// this package. A node belongs to at most one parent; inserting an attached
// node fails with errs.ErrHasParent, and Detach transfers ownership back to
// the caller.
//
// Payload accessors enforce the kind/payload pairing: asking a Byte node for
// its string payload returns errs.ErrWrongKind instead of a zero value.
//
// Nodes are not safe for concurrent mutation. The contract is exclusive
// owner mutates, or read-only sharing.
package tag

import (
	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
)

// Node is one tag in the tree.
type Node struct {
	kind  format.TagKind
	name  string
	named bool

	parent *Node

	num      int64
	flt      float64
	str      string
	raw      []byte
	ints     []int32
	longs    []int64
	children []*Node

	// elemKind records a list's element kind: the kind passed to NewList,
	// or, when that was KindEnd, the kind of the first inserted child.
	elemKind format.TagKind
}

// Kind returns the node's tag kind.
func (n *Node) Kind() format.TagKind {
	return n.kind
}

// Name returns the node's name and whether one is present. List elements and
// bare roots have no name.
func (n *Node) Name() (string, bool) {
	return n.name, n.named
}

// Parent returns the node's parent, or nil for a detached root.
func (n *Node) Parent() *Node {
	return n.parent
}

// NewByte creates a detached Byte tag.
func NewByte(v int8) *Node {
	return &Node{kind: format.KindByte, num: int64(v)}
}

// NewShort creates a detached Short tag.
func NewShort(v int16) *Node {
	return &Node{kind: format.KindShort, num: int64(v)}
}

// NewInt creates a detached Int tag.
func NewInt(v int32) *Node {
	return &Node{kind: format.KindInt, num: int64(v)}
}

// NewLong creates a detached Long tag.
func NewLong(v int64) *Node {
	return &Node{kind: format.KindLong, num: v}
}

// NewFloat creates a detached Float tag.
func NewFloat(v float32) *Node {
	return &Node{kind: format.KindFloat, flt: float64(v)}
}

// NewDouble creates a detached Double tag.
func NewDouble(v float64) *Node {
	return &Node{kind: format.KindDouble, flt: v}
}

// NewByteArray creates a detached ByteArray tag owning a copy of v.
func NewByteArray(v []byte) *Node {
	raw := make([]byte, len(v))
	copy(raw, v)

	return &Node{kind: format.KindByteArray, raw: raw}
}

// NewString creates a detached String tag. The payload is UTF-8 in memory;
// transcoding to MUTF-8 happens at the wire boundary.
func NewString(v string) *Node {
	return &Node{kind: format.KindString, str: v}
}

// NewList creates a detached, empty List tag with the given element kind.
// KindEnd leaves the element kind open until the first insert.
func NewList(elem format.TagKind) *Node {
	return &Node{kind: format.KindList, elemKind: elem}
}

// NewCompound creates a detached, empty Compound tag.
func NewCompound() *Node {
	return &Node{kind: format.KindCompound}
}

// NewIntArray creates a detached IntArray tag owning a copy of v. Elements
// are held host-endian; byte swapping happens only on the wire.
func NewIntArray(v []int32) *Node {
	ints := make([]int32, len(v))
	copy(ints, v)

	return &Node{kind: format.KindIntArray, ints: ints}
}

// NewLongArray creates a detached LongArray tag owning a copy of v.
func NewLongArray(v []int64) *Node {
	longs := make([]int64, len(v))
	copy(longs, v)

	return &Node{kind: format.KindLongArray, longs: longs}
}

// Int64 returns the integer payload of a Byte, Short, Int, or Long tag,
// sign-extended to 64 bits.
func (n *Node) Int64() (int64, error) {
	switch n.kind {
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		return n.num, nil
	default:
		return 0, errs.ErrWrongKind
	}
}

// Float64 returns the float payload of a Float or Double tag.
func (n *Node) Float64() (float64, error) {
	switch n.kind {
	case format.KindFloat, format.KindDouble:
		return n.flt, nil
	default:
		return 0, errs.ErrWrongKind
	}
}

// String returns the UTF-8 payload of a String tag.
func (n *Node) String() (string, error) {
	if n.kind != format.KindString {
		return "", errs.ErrWrongKind
	}

	return n.str, nil
}

// Bytes returns the payload of a ByteArray tag. The slice is the node's
// backing storage, not a copy.
func (n *Node) Bytes() ([]byte, error) {
	if n.kind != format.KindByteArray {
		return nil, errs.ErrWrongKind
	}

	return n.raw, nil
}

// Ints returns the payload of an IntArray tag.
func (n *Node) Ints() ([]int32, error) {
	if n.kind != format.KindIntArray {
		return nil, errs.ErrWrongKind
	}

	return n.ints, nil
}

// Longs returns the payload of a LongArray tag.
func (n *Node) Longs() ([]int64, error) {
	if n.kind != format.KindLongArray {
		return nil, errs.ErrWrongKind
	}

	return n.longs, nil
}

// ElementKind returns a List's element kind; KindEnd for an empty list whose
// kind is still open.
func (n *Node) ElementKind() (format.TagKind, error) {
	if n.kind != format.KindList {
		return format.KindEnd, errs.ErrWrongKind
	}

	if len(n.children) > 0 {
		return n.children[0].kind, nil
	}

	return n.elemKind, nil
}

// Len returns the child count of a List or Compound, and 0 for other kinds.
func (n *Node) Len() int {
	return len(n.children)
}
