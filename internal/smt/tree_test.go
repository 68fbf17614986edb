package smt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertLookupVerifyMember(t *testing.T) {
	tree := New()
	tree.Insert("openssl", 1)

	proof := tree.Lookup("openssl")
	_, isMember := proof.Inner.(Member)
	require.True(t, isMember)

	valueHash, member, ok := Verify(tree.Root(), proof)
	require.True(t, ok)
	require.True(t, member)
	require.Equal(t, HashValue(1), valueHash)
}

func TestVerifyFailsOnFlippedRootBit(t *testing.T) {
	tree := New()
	tree.Insert("openssl", 1)
	proof := tree.Lookup("openssl")

	root := tree.Root()
	root[0] ^= 0x01

	_, _, ok := Verify(root, proof)
	require.False(t, ok)
}

func TestLookupNonMember(t *testing.T) {
	tree := New()
	tree.Insert("openssl", 1)

	proof := tree.Lookup("never-published")
	_, isEmpty := proof.Inner.(NonMemberEmpty)
	_, isLeaf := proof.Inner.(NonMemberLeaf)
	require.True(t, isEmpty || isLeaf)

	_, member, ok := Verify(tree.Root(), proof)
	require.True(t, ok)
	require.False(t, member)
}

func TestInsertTwoPackagesBothVerify(t *testing.T) {
	tree := New()
	tree.Insert("a", 1)
	tree.Insert("b", 3)

	for _, pkg := range []string{"a", "b"} {
		proof := tree.Lookup(pkg)
		_, member, ok := Verify(tree.Root(), proof)
		require.True(t, ok)
		require.True(t, member)
	}
}

func TestNodeCountsMonotonic(t *testing.T) {
	tree := New()
	before := tree.Counts()
	tree.Insert("a", 1)
	after := tree.Counts()
	require.GreaterOrEqual(t, after.Leaf, before.Leaf)
}
