package smt

// NodeCounts tracks the live node population by kind, maintained
// incrementally as the tree is mutated.
type NodeCounts struct {
	Interior int
	Leaf     int
	Empty    int
}

func (c *NodeCounts) apply(d NodeCounts) {
	c.Interior += d.Interior
	c.Leaf += d.Leaf
	c.Empty += d.Empty
}

// Tree is the server-side sparse Merkle prefix tree, plus the flat
// package->revision map kept alongside it for O(1) lookup of "what
// revision did we last publish".
type Tree struct {
	root   Node
	values map[string]uint64
	counts NodeCounts
}

// New returns an empty tree: a single canonical Empty node at depth 0.
func New() *Tree {
	return &Tree{
		root:   Empty{Depth: 0, Prefix: Hash{}},
		values: make(map[string]uint64),
		counts: NodeCounts{Empty: 1},
	}
}

// Root returns the current root hash.
func (t *Tree) Root() Hash {
	return t.root.Hash()
}

// Counts returns a copy of the current node-kind population.
func (t *Tree) Counts() NodeCounts {
	return t.counts
}

// Revision returns the last-inserted revision for packageID, or false if
// it has never been inserted.
func (t *Tree) Revision(packageID string) (uint64, bool) {
	r, ok := t.values[packageID]
	return r, ok
}

// Insert sets packageID's revision, extending or rewriting the tree along
// its path and rehashing every node on the return path.
func (t *Tree) Insert(packageID string, revision uint64) {
	index := HashKey([]byte(packageID))
	valueHash := HashValue(revision)
	t.values[packageID] = revision

	newRoot, delta := insertNode(t.root, index, valueHash, 0)
	t.root = newRoot
	t.counts.apply(delta)
}

// BatchImport inserts every packageID at revision 0, used to build the
// tree's initial state from a workload's init file.
func (t *Tree) BatchImport(packageIDs []string) {
	for _, id := range packageIDs {
		t.Insert(id, 0)
	}
}

func insertNode(node Node, index, valueHash Hash, depth int) (Node, NodeCounts) {
	switch n := node.(type) {
	case Empty:
		return Leaf{KeyIndex: index, Depth: depth, ValueHash: valueHash}, NodeCounts{Leaf: 1, Empty: -1}

	case Leaf:
		if n.KeyIndex == index {
			return Leaf{KeyIndex: index, Depth: depth, ValueHash: valueHash}, NodeCounts{}
		}
		return splitLeaf(n, index, valueHash, depth)

	case Interior:
		if bit(index, depth) == 0 {
			newLeft, d := insertNode(n.Left, index, valueHash, depth+1)
			return Interior{Left: newLeft, Right: n.Right}, d
		}
		newRight, d := insertNode(n.Right, index, valueHash, depth+1)
		return Interior{Left: n.Left, Right: newRight}, d

	default:
		panic("smt: unknown node kind")
	}
}

// splitLeaf replaces an existing leaf that collides with a new key's path
// down to depth with a chain of interior nodes reaching their first
// differing bit, with the two leaves as children and synthetic Empty
// siblings filling out each intermediate level.
func splitLeaf(existing Leaf, newIndex, newValueHash Hash, depth int) (Node, NodeCounts) {
	diverge := depth
	for bit(existing.KeyIndex, diverge) == bit(newIndex, diverge) {
		diverge++
	}

	leafDepth := diverge + 1
	existingLeaf := Leaf{KeyIndex: existing.KeyIndex, Depth: leafDepth, ValueHash: existing.ValueHash}
	newLeaf := Leaf{KeyIndex: newIndex, Depth: leafDepth, ValueHash: newValueHash}

	var node Node
	if bit(existing.KeyIndex, diverge) == 0 {
		node = Interior{Left: existingLeaf, Right: newLeaf}
	} else {
		node = Interior{Left: newLeaf, Right: existingLeaf}
	}
	interiorCount := 1

	for d := diverge - 1; d >= depth; d-- {
		// The sibling's path shares bits 0..d-1 with newIndex and flips bit d.
		siblingPrefix := mask(newIndex, d+1)
		siblingPrefix[d/8] ^= 1 << (7 - d%8)
		emptySibling := Empty{Depth: d + 1, Prefix: siblingPrefix}
		if bit(newIndex, d) == 0 {
			node = Interior{Left: node, Right: emptySibling}
		} else {
			node = Interior{Left: emptySibling, Right: node}
		}
		interiorCount++
	}

	return node, NodeCounts{Leaf: 1, Interior: interiorCount, Empty: diverge - depth}
}
