package authenticator

import "testing"

func testRSAVariant(t *testing.T, a Authenticator) {
	t.Helper()

	a.Publish(Package{ID: "left-pad"})
	a.Publish(Package{ID: "left-pad"})
	a.Publish(Package{ID: "right-pad"})

	snap := a.Metadata()

	rev, proof := a.RequestFile("left-pad")
	if rev != 2 {
		t.Fatalf("left-pad revision = %d, want 2", rev)
	}
	if !a.VerifyMembership(snap, "left-pad", rev, proof) {
		t.Fatal("VerifyMembership rejected a valid witness")
	}
	if a.VerifyMembership(snap, "left-pad", rev+1, proof) {
		t.Fatal("VerifyMembership accepted a witness for the wrong revision")
	}

	rev2, proof2 := a.RequestFile("right-pad")
	if rev2 != 1 {
		t.Fatalf("right-pad revision = %d, want 1", rev2)
	}
	if !a.VerifyMembership(snap, "right-pad", rev2, proof2) {
		t.Fatal("VerifyMembership rejected a valid witness for right-pad")
	}

	stale := a.ZeroSnapshot()
	diff, changed := a.RefreshMetadata(stale)
	if !changed {
		t.Fatal("RefreshMetadata reported no change from a zero snapshot")
	}
	updated := a.UpdateSnapshot(stale, diff)
	if !a.VerifyMembership(updated, "left-pad", rev, proof) {
		t.Fatal("VerifyMembership failed after folding a diff into a zero snapshot")
	}

	if _, changed := a.RefreshMetadata(updated); changed {
		t.Fatal("RefreshMetadata reported a change against its own current snapshot")
	}
}

func TestRSA(t *testing.T) {
	testRSAVariant(t, NewRSA())
}

func TestRSACached(t *testing.T) {
	testRSAVariant(t, NewRSACached())
}

func TestRSACachedRepeatedProveVerifies(t *testing.T) {
	a := NewRSACached()
	a.Publish(Package{ID: "left-pad"})

	_, first := a.RequestFile("left-pad")
	_, second := a.RequestFile("left-pad")

	snap := a.Metadata()
	if !a.VerifyMembership(snap, "left-pad", 1, first) || !a.VerifyMembership(snap, "left-pad", 1, second) {
		t.Fatal("cached Prove produced a witness that failed verification")
	}
}
