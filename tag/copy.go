package tag

import (
	"math"

	"github.com/tagwire/nbt/format"
)

// DeepCopy produces an independent detached subtree with the same kinds,
// names, payloads, and child order.
func (n *Node) DeepCopy() *Node {
	if n == nil {
		return nil
	}

	dup := &Node{
		kind:     n.kind,
		name:     n.name,
		named:    n.named,
		num:      n.num,
		flt:      n.flt,
		str:      n.str,
		elemKind: n.elemKind,
	}

	if n.raw != nil {
		dup.raw = make([]byte, len(n.raw))
		copy(dup.raw, n.raw)
	}
	if n.ints != nil {
		dup.ints = make([]int32, len(n.ints))
		copy(dup.ints, n.ints)
	}
	if n.longs != nil {
		dup.longs = make([]int64, len(n.longs))
		copy(dup.longs, n.longs)
	}

	if len(n.children) > 0 {
		dup.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			cc := c.DeepCopy()
			cc.parent = dup
			dup.children[i] = cc
		}
	}

	return dup
}

// Equal reports whether two subtrees are structurally equal: same kinds,
// names, payloads, and child order. Parents are ignored, so a detached copy
// compares equal to the original.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.named != b.named || (a.named && a.name != b.name) {
		return false
	}

	switch a.kind {
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		return a.num == b.num
	case format.KindFloat, format.KindDouble:
		// Bit equality, so NaN payloads and signed zeroes compare faithfully.
		return math.Float64bits(a.flt) == math.Float64bits(b.flt)
	case format.KindString:
		return a.str == b.str
	case format.KindByteArray:
		return bytesEqual(a.raw, b.raw)
	case format.KindIntArray:
		return slicesEqual(a.ints, b.ints)
	case format.KindLongArray:
		return slicesEqual(a.longs, b.longs)
	case format.KindList:
		ae, _ := a.ElementKind()
		be, _ := b.ElementKind()
		if ae != be {
			return false
		}

		return childrenEqual(a.children, b.children)
	case format.KindCompound:
		return childrenEqual(a.children, b.children)
	default:
		return true
	}
}

func childrenEqual(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func slicesEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
