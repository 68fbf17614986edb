package authenticator

import "testing"

// Insecure is the baseline: it tracks revisions for RequestFile's benefit
// but VerifyMembership never rejects anything, forged or not.
func TestInsecureAcceptsEverything(t *testing.T) {
	a := NewInsecure()
	a.Publish(Package{ID: "alpha"})

	rev, proof := a.RequestFile("alpha")
	if rev != 1 {
		t.Fatalf("revision = %d, want 1", rev)
	}
	if !a.VerifyMembership(a.Metadata(), "alpha", rev, proof) {
		t.Fatal("VerifyMembership rejected the true revision")
	}
	if !a.VerifyMembership(a.Metadata(), "alpha", rev+41, proof) {
		t.Fatal("Insecure.VerifyMembership should accept any revision claim")
	}
	if a.Size() != 0 {
		t.Fatalf("Size() = %d, want 0: Insecure's server-side footprint is defined as nil", a.Size())
	}
}
