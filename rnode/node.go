// Package rnode implements the packed, single-allocation node layout used
// by the radix tree in package radixtree.
//
// Every node owns exactly one []byte region laid out as:
//
//	refcount   uint32       offset 0   number of insertions of the key
//	                                   spelled by this node's path; 0 means
//	                                   the node is purely structural
//	prefixLen  uint32       offset 4   "P", length of the compressed prefix
//	edgeCount  uint32       offset 8   "E", number of outgoing edges
//	prefix     [P]byte      offset 12  the compressed label
//	firstBytes [E]byte      offset 12+P  first byte of each child's prefix
//	children   [E]uint64    offset 12+P+E, unaligned, byte-copied
//
// Child entries are Refs into an Arena (see arena.go), not raw Go pointers:
// Resize reallocates a node's backing array, so the single owning reference
// to a node — held by a parent's edge slot or by the tree's root field —
// must survive that reallocation unchanged. Routing every reference through
// an Arena index gives that stability for free; see the Arena doc comment.
package rnode

import "encoding/binary"

const headerSize = 12

// Ref is a handle to a node's storage, valid only through the Arena that
// issued it.
type Ref uint64

// NoRef is the zero value of Ref. It never designates a live node.
const NoRef Ref = 0

// Node wraps the packed byte region for a single radix tree node.
type Node struct {
	data []byte
}

func size(prefixLen, edgeCount uint32) int {
	return headerSize + int(prefixLen) + int(edgeCount) + int(edgeCount)*8
}

// New allocates and initializes a node's header. The prefix, first-bytes,
// and children sections start zero-valued; callers fill them with
// SetPrefix and SetEdgeAt before the node is linked into the tree.
func New(refcount, prefixLen, edgeCount uint32) *Node {
	n := &Node{data: make([]byte, size(prefixLen, edgeCount))}
	binary.LittleEndian.PutUint32(n.data[0:4], refcount)
	binary.LittleEndian.PutUint32(n.data[4:8], prefixLen)
	binary.LittleEndian.PutUint32(n.data[8:12], edgeCount)
	return n
}

// Refcount returns the number of insertions of the key spelled by this
// node's root-to-node path. Zero means the node is structural only.
func (n *Node) Refcount() uint32 {
	return binary.LittleEndian.Uint32(n.data[0:4])
}

// SetRefcount sets the node's refcount.
func (n *Node) SetRefcount(v uint32) {
	binary.LittleEndian.PutUint32(n.data[0:4], v)
}

// PrefixLen returns the number of bytes in this node's compressed prefix.
func (n *Node) PrefixLen() uint32 {
	return binary.LittleEndian.Uint32(n.data[4:8])
}

// EdgeCount returns the number of outgoing edges from this node.
func (n *Node) EdgeCount() uint32 {
	return binary.LittleEndian.Uint32(n.data[8:12])
}

func (n *Node) firstBytesOffset() int {
	return headerSize + int(n.PrefixLen())
}

func (n *Node) childrenOffset() int {
	return n.firstBytesOffset() + int(n.EdgeCount())
}

// Prefix returns the node's compressed label.
func (n *Node) Prefix() []byte {
	return n.data[headerSize:n.firstBytesOffset()]
}

// SetPrefix overwrites the node's compressed label. p must have exactly
// PrefixLen() bytes.
func (n *Node) SetPrefix(p []byte) {
	copy(n.Prefix(), p)
}

// FirstBytes returns the cached first byte of every outgoing edge, in
// index correspondence with the child reference returned by ChildAt.
func (n *Node) FirstBytes() []byte {
	off := n.firstBytesOffset()
	return n.data[off : off+int(n.EdgeCount())]
}

// FirstByteAt returns the cached first byte of the edge at index i.
func (n *Node) FirstByteAt(i uint32) byte {
	return n.data[n.firstBytesOffset()+int(i)]
}

// ChildAt returns the child reference of the edge at index i.
func (n *Node) ChildAt(i uint32) Ref {
	off := n.childrenOffset() + int(i)*8
	return Ref(binary.LittleEndian.Uint64(n.data[off : off+8]))
}

// SetChildAt sets the child reference of the edge at index i.
func (n *Node) SetChildAt(i uint32, ref Ref) {
	off := n.childrenOffset() + int(i)*8
	binary.LittleEndian.PutUint64(n.data[off:off+8], uint64(ref))
}

// SetEdgeAt writes both halves of the edge at index i: the cached first
// byte and the child reference.
func (n *Node) SetEdgeAt(i uint32, b byte, ref Ref) {
	n.data[n.firstBytesOffset()+int(i)] = b
	n.SetChildAt(i, ref)
}

// EdgeIndex returns the index of the outgoing edge whose cached first byte
// is b, and whether one exists. This is the single-byte linear scan the
// packed layout is built around.
func (n *Node) EdgeIndex(b byte) (uint32, bool) {
	for i, c := range n.FirstBytes() {
		if c == b {
			return uint32(i), true
		}
	}
	return 0, false
}

// ByteSize returns the size in bytes of this node's current backing
// allocation, for instrumentation.
func (n *Node) ByteSize() int {
	return len(n.data)
}

// Resize reallocates the node to hold a prefix of length prefixLen and
// edgeCount outgoing edges, preserving refcount and the first
// min(old prefix length, prefixLen) prefix bytes. The first-bytes and
// children sections are zero-valued after Resize; the caller is
// responsible for rewriting them (and any prefix bytes beyond what was
// preserved) before the node is read again.
func (n *Node) Resize(prefixLen, edgeCount uint32) {
	old := n.data
	oldPrefixLen := n.PrefixLen()

	n.data = make([]byte, size(prefixLen, edgeCount))
	copy(n.data[0:4], old[0:4]) // refcount survives a resize unchanged
	binary.LittleEndian.PutUint32(n.data[4:8], prefixLen)
	binary.LittleEndian.PutUint32(n.data[8:12], edgeCount)

	keep := oldPrefixLen
	if prefixLen < keep {
		keep = prefixLen
	}
	copy(n.data[headerSize:headerSize+int(keep)], old[headerSize:headerSize+int(keep)])
}
