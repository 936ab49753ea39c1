package rnode

import (
	"bytes"
	"testing"
)

func TestNewNode(t *testing.T) {
	n := New(0, 3, 2)

	if n.Refcount() != 0 {
		t.Errorf("expected refcount 0, got %d", n.Refcount())
	}
	if n.PrefixLen() != 3 {
		t.Errorf("expected prefix len 3, got %d", n.PrefixLen())
	}
	if n.EdgeCount() != 2 {
		t.Errorf("expected edge count 2, got %d", n.EdgeCount())
	}
	if len(n.Prefix()) != 3 {
		t.Errorf("expected prefix slice of length 3, got %d", len(n.Prefix()))
	}
}

func TestSetPrefixAndEdges(t *testing.T) {
	n := New(1, 3, 2)
	n.SetPrefix([]byte("abc"))
	n.SetEdgeAt(0, 'x', Ref(10))
	n.SetEdgeAt(1, 'y', Ref(20))

	if !bytes.Equal(n.Prefix(), []byte("abc")) {
		t.Errorf("expected prefix abc, got %q", n.Prefix())
	}
	if n.FirstByteAt(0) != 'x' || n.ChildAt(0) != Ref(10) {
		t.Error("edge 0 was not stored correctly")
	}
	if n.FirstByteAt(1) != 'y' || n.ChildAt(1) != Ref(20) {
		t.Error("edge 1 was not stored correctly")
	}

	idx, ok := n.EdgeIndex('y')
	if !ok || idx != 1 {
		t.Errorf("expected EdgeIndex('y') = (1, true), got (%d, %v)", idx, ok)
	}
	if _, ok := n.EdgeIndex('z'); ok {
		t.Error("expected no edge for 'z'")
	}
}

func TestResizeGrowPreservesPrefixAndRefcount(t *testing.T) {
	n := New(7, 4, 0)
	n.SetPrefix([]byte("test"))

	n.Resize(4, 1)
	n.SetEdgeAt(0, 'i', Ref(99))

	if n.Refcount() != 7 {
		t.Errorf("expected refcount to survive resize, got %d", n.Refcount())
	}
	if !bytes.Equal(n.Prefix(), []byte("test")) {
		t.Errorf("expected prefix to survive resize, got %q", n.Prefix())
	}
	if n.EdgeCount() != 1 || n.ChildAt(0) != Ref(99) {
		t.Error("new edge was not stored correctly after resize")
	}
}

func TestResizeShrinkPrefixKeepsLeadingBytes(t *testing.T) {
	n := New(0, 6, 0)
	n.SetPrefix([]byte("check!"))

	n.Resize(3, 0)

	if !bytes.Equal(n.Prefix(), []byte("che")) {
		t.Errorf("expected leading prefix bytes to survive shrink, got %q", n.Prefix())
	}
}

func TestByteSizeGrowsWithContent(t *testing.T) {
	small := New(0, 0, 0)
	big := New(0, 10, 5)

	if big.ByteSize() <= small.ByteSize() {
		t.Errorf("expected bigger node to report a bigger byte size: %d vs %d",
			big.ByteSize(), small.ByteSize())
	}
}
