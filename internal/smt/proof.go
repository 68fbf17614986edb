package smt

import "github.com/repoauth/sssim/internal/sizeof"

// Inner is one of Member, NonMemberLeaf or NonMemberEmpty: the leaf-level
// evidence a Proof carries about the position a key's path terminates at.
type Inner interface {
	isInner()
}

// Member is returned when the path terminates at a leaf whose index
// matches the looked-up key.
type Member struct {
	ValueHash Hash
}

func (Member) isInner() {}

// NonMemberLeaf is returned when the path terminates at a leaf belonging
// to a different key (a "collision" along the shared prefix).
type NonMemberLeaf struct {
	LeafIndex Hash
	ValueHash Hash
	Depth     int
}

func (NonMemberLeaf) isInner() {}

// NonMemberEmpty is returned when the path terminates at a canonical
// empty subtree.
type NonMemberEmpty struct {
	Prefix Hash
	Depth  int
}

func (NonMemberEmpty) isInner() {}

// Proof is the sibling-hash path from root to the key's terminal node,
// plus that node's own evidence.
type Proof struct {
	KeyIndex Hash
	Siblings []Hash // root-to-leaf order
	Inner    Inner
}

func (p Proof) Size() uint64 {
	siblingsSize := uint64(len(p.Siblings)) * sizeof.HashSize
	// each index carries a depth (8 bytes) plus the 32-byte key hash
	indexSize := uint64(8 + sizeof.HashSize)
	return siblingsSize + indexSize
}

var _ sizeof.DataSized = Proof{}

// Lookup walks from the root collecting the sibling hash at each level,
// returning Member/NonMemberLeaf/NonMemberEmpty evidence for whatever the
// path terminates at.
func (t *Tree) Lookup(packageID string) Proof {
	index := HashKey([]byte(packageID))
	siblings := make([]Hash, 0, Height)

	node := t.root
	depth := 0
	for {
		switch n := node.(type) {
		case Leaf:
			if n.KeyIndex == index {
				return Proof{KeyIndex: index, Siblings: siblings, Inner: Member{ValueHash: n.ValueHash}}
			}
			return Proof{KeyIndex: index, Siblings: siblings, Inner: NonMemberLeaf{
				LeafIndex: n.KeyIndex, ValueHash: n.ValueHash, Depth: n.Depth,
			}}

		case Empty:
			return Proof{KeyIndex: index, Siblings: siblings, Inner: NonMemberEmpty{
				Prefix: n.Prefix, Depth: n.Depth,
			}}

		case Interior:
			var sibling Node
			if bit(index, depth) == 0 {
				sibling, node = n.Right, n.Left
			} else {
				sibling, node = n.Left, n.Right
			}
			siblings = append(siblings, sibling.Hash())
			depth++

		default:
			panic("smt: unknown node kind")
		}
	}
}

// Verify reconstructs the root hash implied by proof and checks it against
// digest. On success it reports whether the key was a member and, if so,
// the value hash it committed to.
func Verify(digest Hash, proof Proof) (valueHash Hash, isMember bool, ok bool) {
	depth := len(proof.Siblings)

	var current Hash
	switch inner := proof.Inner.(type) {
	case Member:
		current = Leaf{KeyIndex: proof.KeyIndex, Depth: depth, ValueHash: inner.ValueHash}.Hash()
		valueHash = inner.ValueHash
		isMember = true

	case NonMemberLeaf:
		if inner.Depth != depth {
			return Hash{}, false, false
		}
		if inner.LeafIndex == proof.KeyIndex {
			return Hash{}, false, false
		}
		if mask(inner.LeafIndex, depth) != mask(proof.KeyIndex, depth) {
			return Hash{}, false, false
		}
		current = Leaf{KeyIndex: inner.LeafIndex, Depth: depth, ValueHash: inner.ValueHash}.Hash()

	case NonMemberEmpty:
		if inner.Depth != depth {
			return Hash{}, false, false
		}
		if mask(proof.KeyIndex, depth) != inner.Prefix {
			return Hash{}, false, false
		}
		current = Empty{Depth: depth, Prefix: inner.Prefix}.Hash()

	default:
		return Hash{}, false, false
	}

	for i := depth - 1; i >= 0; i-- {
		sib := proof.Siblings[i]
		if bit(proof.KeyIndex, i) == 0 {
			current = hashInteriorRaw(current, sib)
		} else {
			current = hashInteriorRaw(sib, current)
		}
	}

	if current != digest {
		return Hash{}, false, false
	}
	return valueHash, isMember, true
}
