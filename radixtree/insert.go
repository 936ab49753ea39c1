package radixtree

import "github.com/7thcode/radixtree/rnode"

// splitAtEdge handles insert case A1: the key diverges from the matched
// node at an edge boundary (either no bytes matched at all, or the whole
// of current's prefix matched). The unmatched key tail becomes a new leaf,
// added as an outgoing edge of current.
func (t *Tree) splitAtEdge(m matchResult, key []byte) {
	n := t.arena.Get(m.current)
	tail := key[m.nkey:]

	leaf := rnode.New(1, uint32(len(tail)), 0)
	leaf.SetPrefix(tail)
	leafRef := t.arena.Alloc(leaf)

	appendEdge(n, tail[0], leafRef)
}

// splitMidPrefix handles insert case A2: the key diverges partway through
// current's prefix, after at least one byte of the key matched. current is
// rewritten in place as the fork point; its old content survives as a new
// split node, and the unmatched key tail becomes a new leaf. Both become
// children of current.
func (t *Tree) splitMidPrefix(m matchResult, key []byte) {
	n := t.arena.Get(m.current)
	keyTail := key[m.nkey:]

	oldPrefix := append([]byte(nil), n.Prefix()...)
	splitPrefix := oldPrefix[m.nprefix:]
	splitRef := t.spliceOut(n, splitPrefix)

	keyLeaf := rnode.New(1, uint32(len(keyTail)), 0)
	keyLeaf.SetPrefix(keyTail)
	keyRef := t.arena.Alloc(keyLeaf)

	n.Resize(uint32(m.nprefix), 2)
	n.SetRefcount(0)
	n.SetEdgeAt(0, keyTail[0], keyRef)
	n.SetEdgeAt(1, splitPrefix[0], splitRef)
}

// splitKeyIsPrefix handles insert case B: the key is fully consumed but
// current's prefix is not. current's old content survives as a new split
// node; current is rewritten as a one-edge internal-turned-key node
// spelling the inserted key.
func (t *Tree) splitKeyIsPrefix(m matchResult) {
	n := t.arena.Get(m.current)

	splitPrefix := append([]byte(nil), n.Prefix()[m.nprefix:]...)
	splitRef := t.spliceOut(n, splitPrefix)

	n.Resize(uint32(m.nprefix), 1)
	n.SetRefcount(1)
	n.SetEdgeAt(0, splitPrefix[0], splitRef)
}

// spliceOut allocates a fresh node carrying n's current refcount and
// outgoing edges, with prefix splitPrefix, and returns its Ref. It is the
// shared step of insert cases A2 and B: n is about to be resized into an
// internal fork point, and its old identity as a key/branch node must
// survive somewhere.
func (t *Tree) spliceOut(n *rnode.Node, splitPrefix []byte) rnode.Ref {
	edgeCount := n.EdgeCount()
	firstBytes := append([]byte(nil), n.FirstBytes()...)
	children := make([]rnode.Ref, edgeCount)
	for i := uint32(0); i < edgeCount; i++ {
		children[i] = n.ChildAt(i)
	}

	split := rnode.New(n.Refcount(), uint32(len(splitPrefix)), edgeCount)
	split.SetPrefix(splitPrefix)
	for i := uint32(0); i < edgeCount; i++ {
		split.SetEdgeAt(i, firstBytes[i], children[i])
	}
	return t.arena.Alloc(split)
}

// appendEdge grows n by one outgoing edge, preserving its existing edges.
func appendEdge(n *rnode.Node, b byte, ref rnode.Ref) {
	oldEdgeCount := n.EdgeCount()
	firstBytes := append([]byte(nil), n.FirstBytes()...)
	children := make([]rnode.Ref, oldEdgeCount)
	for i := uint32(0); i < oldEdgeCount; i++ {
		children[i] = n.ChildAt(i)
	}

	n.Resize(n.PrefixLen(), oldEdgeCount+1)
	for i := uint32(0); i < oldEdgeCount; i++ {
		n.SetEdgeAt(i, firstBytes[i], children[i])
	}
	n.SetEdgeAt(oldEdgeCount, b, ref)
}
