package authenticator

import "testing"

// conformance runs the behavior every Authenticator variant must satisfy
// regardless of its internal representation: publish, observe, refresh,
// verify, and reject a forged revision.
func conformance(t *testing.T, a Authenticator) {
	t.Helper()

	if a.Name() == "" {
		t.Fatal("Name() returned an empty string")
	}

	a.Publish(Package{ID: "alpha"})
	a.Publish(Package{ID: "beta"})
	a.Publish(Package{ID: "alpha"})

	snap := a.Metadata()

	rev, proof := a.RequestFile("alpha")
	if rev != 2 {
		t.Fatalf("alpha revision = %d, want 2", rev)
	}
	if !a.VerifyMembership(snap, "alpha", rev, proof) {
		t.Fatal("VerifyMembership rejected a genuine (snapshot, proof) pair")
	}
	if a.VerifyMembership(snap, "alpha", rev+1, proof) {
		t.Fatal("VerifyMembership accepted a forged revision")
	}

	betaRev, betaProof := a.RequestFile("beta")
	if betaRev != 1 {
		t.Fatalf("beta revision = %d, want 1", betaRev)
	}
	if !a.VerifyMembership(snap, "beta", betaRev, betaProof) {
		t.Fatal("VerifyMembership rejected beta's genuine proof")
	}

	zero := a.ZeroSnapshot()
	diff, changed := a.RefreshMetadata(zero)
	if !changed {
		t.Fatal("RefreshMetadata reported no change for a brand-new client")
	}
	if !a.CheckNoRollback(zero, diff) {
		t.Fatal("CheckNoRollback rejected a forward-only diff")
	}
	caught := a.UpdateSnapshot(zero, diff)
	if !a.VerifyMembership(caught, "alpha", rev, proof) {
		t.Fatal("VerifyMembership failed once the zero snapshot caught up")
	}

	if _, changed := a.RefreshMetadata(caught); changed {
		t.Fatal("RefreshMetadata reported a change against the authenticator's own current snapshot")
	}
}

func TestConformance(t *testing.T) {
	// Insecure is deliberately excluded: it makes no cryptographic claims,
	// so it would fail the forged-revision rejection check by design. See
	// TestInsecureAcceptsEverything.
	variants := map[string]func() Authenticator{
		"hackage":           func() Authenticator { return NewHackage() },
		"mercury_diff":      func() Authenticator { return NewMercuryDiff() },
		"mercury_hash":      func() Authenticator { return NewMercuryHash() },
		"mercury_hash_diff": func() Authenticator { return NewMercuryHashDiff() },
		"sparse_merkle":     func() Authenticator { return NewSparseMerkle() },
		"vanilla_tuf":       func() Authenticator { return NewVanillaTUF() },
		"rsa":               func() Authenticator { return NewRSA() },
		"rsa_cached":        func() Authenticator { return NewRSACached() },
	}

	for name, build := range variants {
		t.Run(name, func(t *testing.T) {
			conformance(t, build())
		})
	}
}
