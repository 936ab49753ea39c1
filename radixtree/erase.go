package radixtree

import "github.com/7thcode/radixtree/rnode"

// mergeWithOnlyChild absorbs ref's sole child into ref, restoring the
// compaction invariant after ref's refcount dropped to zero with exactly
// one outgoing edge. The child is freed.
func (t *Tree) mergeWithOnlyChild(ref rnode.Ref) {
	n := t.arena.Get(ref)
	childRef := n.ChildAt(0)
	absorb(n, t.arena.Get(childRef))
	t.arena.Free(childRef)
}

// removeLeaf handles erase's leaf-removal branch: m.current is a freshly
// emptied leaf (refcount 0, no outgoing edges). If its parent is a
// non-root branching-internal node with exactly one other edge, the parent
// and that sibling are merged to restore compaction; otherwise the leaf is
// simply dropped from its parent's edge list.
func (t *Tree) removeLeaf(m matchResult) {
	p := t.arena.Get(m.parent)

	if p.EdgeCount() == 2 && p.Refcount() == 0 && m.parent != t.root {
		siblingIdx := 1 - m.edgeIdx
		siblingRef := p.ChildAt(siblingIdx)
		absorb(p, t.arena.Get(siblingRef))
		t.arena.Free(m.current)
		t.arena.Free(siblingRef)
		return
	}

	removeEdge(p, m.edgeIdx)
	t.arena.Free(m.current)
}

// absorb appends child's prefix to dst's prefix and replaces dst's edges
// and refcount with child's, the shared merge step behind both
// mergeWithOnlyChild and removeLeaf's parent-pair merge. dst keeps its
// Ref; child is left to the caller to free.
func absorb(dst, child *rnode.Node) {
	mergedPrefix := append(append([]byte(nil), dst.Prefix()...), child.Prefix()...)
	edgeCount := child.EdgeCount()
	firstBytes := append([]byte(nil), child.FirstBytes()...)
	children := make([]rnode.Ref, edgeCount)
	for i := uint32(0); i < edgeCount; i++ {
		children[i] = child.ChildAt(i)
	}
	refcount := child.Refcount()

	dst.Resize(uint32(len(mergedPrefix)), edgeCount)
	dst.SetPrefix(mergedPrefix)
	for i := uint32(0); i < edgeCount; i++ {
		dst.SetEdgeAt(i, firstBytes[i], children[i])
	}
	dst.SetRefcount(refcount)
}

// removeEdge deletes the outgoing edge at index idx from p by swapping in
// the last edge and shrinking by one, per the packed layout's
// swap-with-last removal (edge order is not stable across mutations).
func removeEdge(p *rnode.Node, idx uint32) {
	last := p.EdgeCount() - 1
	p.SetEdgeAt(idx, p.FirstByteAt(last), p.ChildAt(last))

	firstBytes := append([]byte(nil), p.FirstBytes()[:last]...)
	children := make([]rnode.Ref, last)
	for i := uint32(0); i < last; i++ {
		children[i] = p.ChildAt(i)
	}

	p.Resize(p.PrefixLen(), last)
	for i := uint32(0); i < last; i++ {
		p.SetEdgeAt(i, firstBytes[i], children[i])
	}
}
