// Package radixtree implements an in-memory compact radix tree (Patricia
// trie) over byte-string keys with multiset semantics: each key carries a
// reference count, so repeated Inserts are counted and repeated Erases
// decrement until the key disappears.
//
// A Tree is single-threaded; callers needing concurrent access must
// synchronize externally (see cmd/radixtreed for an example that wraps a
// Tree in a sync.RWMutex).
//
// Example:
//
//	t := radixtree.New()
//	t.Insert([]byte("test"))
//	t.Insert([]byte("testing"))
//	t.Contains([]byte("test")) // true
//	t.Erase([]byte("test"))    // true
//	t.Size()                   // 1
package radixtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/7thcode/radixtree/rnode"
)

// Tree is a compact radix tree storing byte-string keys as a multiset.
type Tree struct {
	arena *rnode.Arena
	root  rnode.Ref
	size  int
}

// New returns an empty Tree.
func New() *Tree {
	arena := rnode.NewArena()
	root := arena.Alloc(rnode.New(0, 0, 0))
	return &Tree{arena: arena, root: root}
}

// Size returns the number of logical insertions currently held by the
// tree: the sum of every key node's refcount.
func (t *Tree) Size() int {
	return t.size
}

// Contains reports whether key is currently present (refcount > 0).
// key must have length at least 1.
func (t *Tree) Contains(key []byte) bool {
	requireKey(key)
	m := t.match(key)
	n := t.arena.Get(m.current)
	return m.nkey == len(key) && m.nprefix == int(n.PrefixLen()) && n.Refcount() > 0
}

// Insert adds one occurrence of key to the tree and reports whether the
// key transitioned from absent to present. Size always grows by one,
// including on a repeat insertion of an already-present key.
// key must have length at least 1.
func (t *Tree) Insert(key []byte) bool {
	requireKey(key)
	m := t.match(key)
	n := t.arena.Get(m.current)
	t.size++

	switch {
	case m.nkey < len(key) && (m.nkey == 0 || m.nprefix == int(n.PrefixLen())):
		t.splitAtEdge(m, key)
		return true
	case m.nkey < len(key):
		t.splitMidPrefix(m, key)
		return true
	case m.nprefix < int(n.PrefixLen()):
		t.splitKeyIsPrefix(m)
		return true
	default:
		refc := n.Refcount() + 1
		n.SetRefcount(refc)
		return refc == 1
	}
}

// Erase removes one occurrence of key from the tree and reports whether
// the key was present (refcount > 0) before the call. key must have
// length at least 1.
func (t *Tree) Erase(key []byte) bool {
	requireKey(key)
	m := t.match(key)
	n := t.arena.Get(m.current)
	if m.nkey != len(key) || m.nprefix != int(n.PrefixLen()) || n.Refcount() == 0 {
		return false
	}

	n.SetRefcount(n.Refcount() - 1)
	t.size--

	if n.Refcount() > 0 {
		return true
	}

	switch {
	case n.EdgeCount() > 1:
		return true
	case n.EdgeCount() == 1:
		t.mergeWithOnlyChild(m.current)
		return true
	default:
		t.removeLeaf(m)
		return true
	}
}

// Apply visits every present key (refcount > 0) exactly once, in
// depth-first, sibling-order-unspecified order. The walk stops early if
// visit returns false.
func (t *Tree) Apply(visit func(key []byte) bool) {
	t.apply(t.root, nil, visit)
}

func (t *Tree) apply(ref rnode.Ref, prefix []byte, visit func(key []byte) bool) bool {
	n := t.arena.Get(ref)
	path := append(append([]byte(nil), prefix...), n.Prefix()...)

	if n.Refcount() > 0 && !visit(path) {
		return false
	}
	for i := uint32(0); i < n.EdgeCount(); i++ {
		if !t.apply(n.ChildAt(i), path, visit) {
			return false
		}
	}
	return true
}

// Print writes a human-readable structural dump of the tree to w: one line
// per node, indented by depth, with a "[*]" marker on nodes that hold a
// key. This is a debugging aid; its exact formatting is not a stable
// contract.
func (t *Tree) Print(w io.Writer) {
	fmt.Fprintln(w, "[root]")
	root := t.arena.Get(t.root)
	for i := uint32(0); i < root.EdgeCount(); i++ {
		t.printNode(w, root.ChildAt(i), 1)
	}
}

func (t *Tree) printNode(w io.Writer, ref rnode.Ref, level int) {
	n := t.arena.Get(ref)
	fmt.Fprint(w, strings.Repeat(" ", 5*level-4))
	fmt.Fprint(w, "`-> ")
	w.Write(n.Prefix())
	if n.Refcount() > 0 {
		fmt.Fprint(w, " [*]")
	}
	fmt.Fprintln(w)
	for i := uint32(0); i < n.EdgeCount(); i++ {
		t.printNode(w, n.ChildAt(i), level+1)
	}
}

func requireKey(key []byte) {
	if len(key) == 0 {
		panic("radixtree: key must not be empty")
	}
}
