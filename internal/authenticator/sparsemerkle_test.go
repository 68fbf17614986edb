package authenticator

import "testing"

func TestSparseMerkleRejectsWrongRoot(t *testing.T) {
	a := NewSparseMerkle()
	a.Publish(Package{ID: "alpha"})

	snap := a.Metadata().(SparseMerkleSnapshot)
	_, proof := a.RequestFile("alpha")

	a.Publish(Package{ID: "beta"})
	stale := snap
	if a.VerifyMembership(a.Metadata(), "alpha", 1, proof) {
		t.Fatal("VerifyMembership accepted a proof against a root it was not produced for")
	}
	if !a.VerifyMembership(stale, "alpha", 1, proof) {
		t.Fatal("VerifyMembership rejected a proof against the root it was produced for")
	}
}

func TestSparseMerkleUnknownPackageIsNotMember(t *testing.T) {
	a := NewSparseMerkle()
	a.Publish(Package{ID: "alpha"})

	snap := a.Metadata()
	_, proof := a.RequestFile("nonexistent")
	if a.VerifyMembership(snap, "nonexistent", 1, proof) {
		t.Fatal("VerifyMembership claimed membership for an unpublished package")
	}
}
