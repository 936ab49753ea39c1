package rnode

// Arena owns the storage of every node belonging to a single tree. It hands
// out a Ref for each allocated Node and keeps serving the same Node value
// for that Ref even after the Node's own backing array is reallocated by
// Resize — the Arena's slot is the stable address, not the byte slice
// inside the Node.
//
// Slot reuse follows the same free-list discipline as a page allocator
// that threads a linked free list through freed storage (see
// bpager.Pager.AllocatePage/FreePage in the B+Tree this package was
// adapted from): a freed Ref is pushed onto a free list and handed back out
// by the next Alloc before the slot slice is grown. The free list lives
// beside the slots here rather than inside freed node bytes, since Go slices
// already give us a place to put it.
type Arena struct {
	slots []*Node
	free  []Ref
}

// NewArena returns an empty arena. Slot 0 is reserved so that Ref's zero
// value, NoRef, never aliases a live node.
func NewArena() *Arena {
	return &Arena{slots: make([]*Node, 1)}
}

// Alloc stores n in the arena and returns its Ref, reusing a freed slot
// when one is available.
func (a *Arena) Alloc(n *Node) Ref {
	if len(a.free) > 0 {
		ref := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.slots[ref] = n
		return ref
	}
	a.slots = append(a.slots, n)
	return Ref(len(a.slots) - 1)
}

// Get returns the node stored at ref.
func (a *Arena) Get(ref Ref) *Node {
	return a.slots[ref]
}

// Free releases ref's slot for reuse. The arena drops its reference to
// ref's node so it can be garbage collected.
func (a *Arena) Free(ref Ref) {
	a.slots[ref] = nil
	a.free = append(a.free, ref)
}

// Len returns the number of live (allocated, non-freed) nodes in the
// arena, for instrumentation.
func (a *Arena) Len() int {
	return len(a.slots) - 1 - len(a.free)
}
