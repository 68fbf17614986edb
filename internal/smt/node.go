// Package smt implements a 256-bit-indexed sparse Merkle prefix tree,
// CONIKS-style: a binary trie of Empty/Leaf/Interior nodes, each hashed
// with a distinct domain tag, supporting point insert, sibling-hash proof
// generation, and proof verification.
package smt

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Height is the fixed tree depth: every key is a 256-bit index.
const Height = 256

// Hash is a SHA3-256 digest.
type Hash [32]byte

var (
	tagEmpty    = [4]byte{'E', 'M', 'P', 'T'}
	tagLeaf     = [4]byte{'L', 'E', 'A', 'F'}
	tagInterior = [4]byte{'I', 'N', 'T', 'R'}
	domainNonce = []byte("sssim-sparse-merkle-v1")
)

func hashDomain(tag [4]byte, parts ...[]byte) Hash {
	h := sha3.New256()
	h.Write(tag[:])
	h.Write(domainNonce)
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HashKey derives a tree index from an arbitrary byte key (a PackageId).
func HashKey(key []byte) Hash {
	h := sha3.New256()
	h.Write(key)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HashValue derives a leaf value hash from a revision counter.
func HashValue(revision uint64) Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], revision)
	h := sha3.New256()
	h.Write(buf[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// bit returns the i-th bit of h, counting from the most significant bit
// (bit 0) to the least significant bit (bit 255).
func bit(h Hash, i int) int {
	byteIdx := i / 8
	bitIdx := 7 - i%8
	return int((h[byteIdx] >> bitIdx) & 1)
}

// mask zeroes every bit of h from position depth onward, leaving only the
// shared depth-bit prefix: the canonical form an Empty node's prefix
// must satisfy.
func mask(h Hash, depth int) Hash {
	out := h
	for i := depth; i < Height; i++ {
		byteIdx := i / 8
		bitIdx := 7 - i%8
		out[byteIdx] &^= 1 << bitIdx
	}
	return out
}

// Node is any of Empty, Leaf or Interior.
type Node interface {
	Hash() Hash
}

// Empty is the canonical empty subtree at depth rooted under prefix.
type Empty struct {
	Depth  int
	Prefix Hash
}

func (e Empty) Hash() Hash {
	var depthBuf [8]byte
	binary.BigEndian.PutUint64(depthBuf[:], uint64(e.Depth))
	return hashDomain(tagEmpty, e.Prefix[:], depthBuf[:])
}

// Leaf is a unique populated position in the tree.
type Leaf struct {
	KeyIndex  Hash
	Depth     int
	ValueHash Hash
}

func (l Leaf) Hash() Hash {
	var depthBuf [8]byte
	binary.BigEndian.PutUint64(depthBuf[:], uint64(l.Depth))
	return hashDomain(tagLeaf, l.KeyIndex[:], depthBuf[:], l.ValueHash[:])
}

// Interior owns exactly two children; no back-pointers.
type Interior struct {
	Left  Node
	Right Node
}

func (n Interior) Hash() Hash {
	lh, rh := n.Left.Hash(), n.Right.Hash()
	return hashInteriorRaw(lh, rh)
}

func hashInteriorRaw(left, right Hash) Hash {
	return hashDomain(tagInterior, left[:], right[:])
}
