package radixtree

import "github.com/7thcode/radixtree/rnode"

// matchResult is the outcome of a read-only descent from the root: how far
// the key and the deepest node's prefix agreed, and enough context for a
// mutating operation to act on that node and its parent.
type matchResult struct {
	nkey    int      // bytes of key consumed
	nprefix int      // bytes matched within current's prefix
	edgeIdx uint32   // index of the edge parent -> current, if parent != current
	current rnode.Ref
	parent  rnode.Ref
}

// match descends from the root, matching key against compressed prefixes
// one node at a time. It stops at the deepest node whose prefix agrees with
// a prefix of the unconsumed key, either because the whole key or the whole
// node prefix ran out, because the node's prefix only partially matched, or
// because there is no outgoing edge for the next key byte.
//
// match has no side effects: it never allocates and never mutates a node.
//
// The spec this tree implements also threads a grandparent reference
// through match, for the case where erase's parent-pair merge needs to
// repoint a grandparent's edge after the parent node's backing storage is
// reallocated. Under this tree's arena-indexed representation a node's Ref
// never changes across Resize (see rnode.Arena), so that repoint is always
// a no-op; match here tracks only one ancestor level, not two.
func (t *Tree) match(key []byte) matchResult {
	current := t.root
	parent := t.root
	var edgeIdx uint32
	nkey, nprefix := 0, 0

	for {
		n := t.arena.Get(current)
		if n.PrefixLen() == 0 && n.EdgeCount() == 0 {
			break
		}
		if nkey >= len(key) {
			break
		}

		prefix := n.Prefix()
		nprefix = 0
		for nprefix < len(prefix) && nkey < len(key) && prefix[nprefix] == key[nkey] {
			nprefix++
			nkey++
		}
		if nprefix < len(prefix) {
			break // partial prefix match: caller splits current.
		}

		if nkey >= len(key) {
			break
		}
		idx, ok := n.EdgeIndex(key[nkey])
		if !ok {
			break
		}

		parent = current
		edgeIdx = idx
		current = n.ChildAt(idx)
	}

	return matchResult{
		nkey:    nkey,
		nprefix: nprefix,
		edgeIdx: edgeIdx,
		current: current,
		parent:  parent,
	}
}
