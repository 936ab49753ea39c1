package radixtree

import (
	"math/rand"
	"testing"

	"github.com/7thcode/radixtree/rnode"
)

// TestDifferentialAgainstReferenceMultiset drives the tree with a large
// number of random insert/erase/contains operations and checks every
// return value and the running size against a map[string]int reference
// model, the same differential-testing shape ajwerner-btree's generic
// tree test uses (deterministic seeded randomness for reproducibility),
// generalized here to keys instead of ordered ints.
func TestDifferentialAgainstReferenceMultiset(t *testing.T) {
	const ops = 20000
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	rng := rand.New(rand.NewSource(1))
	tree := New()
	reference := map[string]int{}

	randomKey := func() string {
		n := 1 + rng.Intn(50)
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(b)
	}

	refSize := 0
	for i := 0; i < ops; i++ {
		key := randomKey()

		switch rng.Intn(3) {
		case 0:
			want := reference[key] == 0
			got := insertStr(tree, key)
			if got != want {
				t.Fatalf("op %d: Insert(%q) = %v, want %v", i, key, got, want)
			}
			reference[key]++
			refSize++

		case 1:
			want := reference[key] > 0
			got := eraseStr(tree, key)
			if got != want {
				t.Fatalf("op %d: Erase(%q) = %v, want %v", i, key, got, want)
			}
			if want {
				reference[key]--
				refSize--
				if reference[key] == 0 {
					delete(reference, key)
				}
			}

		case 2:
			want := reference[key] > 0
			got := containsStr(tree, key)
			if got != want {
				t.Fatalf("op %d: Contains(%q) = %v, want %v", i, key, got, want)
			}
		}

		if tree.Size() != refSize {
			t.Fatalf("op %d: Size() = %d, want %d", i, tree.Size(), refSize)
		}
	}

	var visited []string
	tree.Apply(func(key []byte) bool {
		visited = append(visited, string(key))
		return true
	})
	if len(visited) != len(reference) {
		t.Fatalf("Apply visited %d distinct keys, want %d", len(visited), len(reference))
	}
	for _, key := range visited {
		if reference[key] == 0 {
			t.Errorf("Apply visited %q, which the reference model doesn't hold", key)
		}
	}
}

// TestInsertionIsOrderInsensitive checks that the final membership and
// size don't depend on the order keys were inserted in.
func TestInsertionIsOrderInsensitive(t *testing.T) {
	keys := []string{"tester", "water", "slow", "slower", "test", "team", "toast"}

	orderA := New()
	for _, k := range keys {
		insertStr(orderA, k)
	}

	shuffled := append([]string(nil), keys...)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	orderB := New()
	for _, k := range shuffled {
		insertStr(orderB, k)
	}

	if orderA.Size() != orderB.Size() {
		t.Fatalf("expected size %d, got %d", orderA.Size(), orderB.Size())
	}
	for _, k := range keys {
		if containsStr(orderA, k) != containsStr(orderB, k) {
			t.Errorf("membership of %q differs between insertion orders", k)
		}
	}
}

// TestRoundTripReturnsToBaselineFootprint inserts a key r times then
// erases it r times and checks the tree is back to empty, contains
// nothing, and occupies no more node bytes than before the inserts.
func TestRoundTripReturnsToBaselineFootprint(t *testing.T) {
	tree := New()
	const r = 5

	footprint := func() int {
		total := 0
		var walk func(ref rnode.Ref)
		walk = func(ref rnode.Ref) {
			n := tree.arena.Get(ref)
			total += n.ByteSize()
			for i := uint32(0); i < n.EdgeCount(); i++ {
				walk(n.ChildAt(i))
			}
		}
		walk(tree.root)
		return total
	}
	baseline := footprint()

	for i := 0; i < r; i++ {
		insertStr(tree, "repeat")
	}
	if tree.Size() != r {
		t.Fatalf("expected size %d after %d inserts, got %d", r, r, tree.Size())
	}

	for i := 0; i < r; i++ {
		if !eraseStr(tree, "repeat") {
			t.Fatalf("expected erase %d to return true", i)
		}
	}
	if tree.Size() != 0 {
		t.Fatalf("expected size 0, got %d", tree.Size())
	}
	if containsStr(tree, "repeat") {
		t.Error("expected repeat to no longer be contained")
	}
	if got := footprint(); got > baseline {
		t.Errorf("expected footprint at most %d bytes, got %d", baseline, got)
	}
}

// TestLookupIsIdempotent checks that repeated Contains calls agree and
// don't mutate the tree's size.
func TestLookupIsIdempotent(t *testing.T) {
	tree := New()
	insertStr(tree, "test")
	insertStr(tree, "testing")

	before := tree.Size()
	for i := 0; i < 5; i++ {
		if !containsStr(tree, "test") {
			t.Fatalf("call %d: expected test to be contained", i)
		}
	}
	if tree.Size() != before {
		t.Errorf("expected Contains to not mutate size, got %d want %d", tree.Size(), before)
	}
}
