package authenticator

import "testing"

func TestMercuryHashRejectsTamperedContent(t *testing.T) {
	a := NewMercuryHash()
	a.Publish(Package{ID: "alpha"})

	snap := a.Metadata()
	rev, proof := a.RequestFile("alpha")
	p := proof.(MercuryHashProof)
	p.Hash[0] ^= 0xFF

	if a.VerifyMembership(snap, "alpha", rev, p) {
		t.Fatal("VerifyMembership accepted a tampered content hash")
	}
}

func TestMercuryHashDiffTracksChangedOnly(t *testing.T) {
	a := NewMercuryHashDiff()
	a.Publish(Package{ID: "alpha"})
	snap := a.Metadata()

	a.Publish(Package{ID: "beta"})
	diff, changed := a.RefreshMetadata(snap)
	if !changed {
		t.Fatal("expected a diff after publishing beta")
	}
	d := diff.(MercuryHashDiffPayload)
	if _, ok := d.Changed["alpha"]; ok {
		t.Fatal("diff included alpha, which did not change")
	}
	if _, ok := d.Changed["beta"]; !ok {
		t.Fatal("diff omitted beta, which did change")
	}
}
