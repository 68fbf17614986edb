package authenticator

import "testing"

func TestVanillaTUFDiffIsFullMetadata(t *testing.T) {
	a := NewVanillaTUF()
	a.Publish(Package{ID: "alpha"})
	a.Publish(Package{ID: "beta"})

	diff, changed := a.RefreshMetadata(a.ZeroSnapshot())
	if !changed {
		t.Fatal("expected a diff for a brand-new client")
	}
	d := diff.(VanillaTUFSnapshot)
	if len(d.Revisions) != 2 {
		t.Fatalf("diff carried %d entries, want 2: vanilla-tuf ships the whole metadata map every refresh", len(d.Revisions))
	}
}

func TestVanillaTUFProofIsEmpty(t *testing.T) {
	a := NewVanillaTUF()
	a.Publish(Package{ID: "alpha"})
	_, proof := a.RequestFile("alpha")
	if proof.Size() != 0 {
		t.Fatalf("proof size = %d, want 0: vanilla-tuf trusts the signed metadata map alone", proof.Size())
	}
}
