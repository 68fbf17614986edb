package authenticator

import (
	"github.com/repoauth/sssim/internal/accumulator"
	"github.com/repoauth/sssim/internal/accumulator/rsa"
	"github.com/repoauth/sssim/internal/bigprime"
	"github.com/repoauth/sssim/internal/store"
	"github.com/repoauth/sssim/internal/xassert"
)

// RSASnapshot is the accumulator's constant-size digest, O(1) regardless
// of repository size: the RSA accumulator's headline property.
type RSASnapshot struct {
	Digest accumulator.Digest
}

func (s RSASnapshot) Size() uint64 { return s.Digest.Size() }

// RSAProof is the membership/non-membership witness bundle for one file.
type RSAProof struct {
	Witness accumulator.Witness
}

func (p RSAProof) Size() uint64 { return p.Witness.Size() }

// RSA is the accumulator-backed authenticator. It wraps an
// accumulator.Accumulator rather than a concrete *rsa.Accumulator so the
// "rsa-cached" variant can be built by decorating the same accumulator
// with accumulator.Caching, with no duplicated authenticator logic.
type RSA struct {
	name      string
	acc       accumulator.Accumulator
	revisions map[PackageID]Revision
	primes    map[PackageID]bigprime.Prime
}

var _ Authenticator = (*RSA)(nil)

func newRSA(name string, acc accumulator.Accumulator) *RSA {
	return &RSA{
		name:      name,
		acc:       acc,
		revisions: make(map[PackageID]Revision),
		primes:    make(map[PackageID]bigprime.Prime),
	}
}

// NewRSA builds the plain RSA-accumulator authenticator. Every increment
// is additionally logged to an in-memory store.Store, an audit trail kept
// independent of the accumulator's own internal log/proof cache.
func NewRSA() *RSA {
	return newRSA("rsa", accumulator.NewPersistentLog(rsa.New(), store.NewMemory()))
}

// NewRSACached builds the RSA-accumulator authenticator with its Prove
// calls memoized, per the supplemented "rsa-cached" variant, with the same
// persistent increment log as NewRSA.
func NewRSACached() *RSA {
	cached := accumulator.NewCaching(rsa.New())
	return newRSA("rsa_cached", accumulator.NewPersistentLog(cached, store.NewMemory()))
}

func (a *RSA) Name() string { return a.name }

func (a *RSA) ZeroSnapshot() Snapshot {
	return RSASnapshot{Digest: rsa.IdentityDigest()}
}

// primeFor derives (and caches) the prime identifying pkg. HashToPrime is
// deterministic, so caching here is purely an optimization: an independent
// verifier recomputing it from scratch gets the same value.
func (a *RSA) primeFor(id PackageID) bigprime.Prime {
	if p, ok := a.primes[id]; ok {
		return p
	}
	p, err := bigprime.HashToPrime([]byte(id))
	xassert.Assert(err == nil, "rsa authenticator: hash-to-prime failed for %q: %v", id, err)
	a.primes[id] = p
	return p
}

func (a *RSA) Publish(pkg Package) {
	prime := a.primeFor(pkg.ID)
	a.acc.Increment(prime)
	a.revisions[pkg.ID] = a.revisions[pkg.ID].Increment()
}

func (a *RSA) RefreshMetadata(snap Snapshot) (Diff, bool) {
	s := snap.(RSASnapshot)
	cur := a.acc.CurrentDigest()
	if cur.Equal(s.Digest) {
		return nil, false
	}
	return RSASnapshot{Digest: cur}, true
}

func (a *RSA) RequestFile(pkg PackageID) (Revision, Proof) {
	rev := a.revisions[pkg]
	prime := a.primeFor(pkg)
	w, ok := a.acc.Prove(prime, uint64(rev))
	xassert.Assert(ok, "rsa authenticator: no witness for %q at revision %d", pkg, rev)
	return rev, RSAProof{Witness: w}
}

func (a *RSA) Metadata() Snapshot {
	return RSASnapshot{Digest: a.acc.CurrentDigest()}
}

func (a *RSA) CheckNoRollback(Snapshot, Diff) bool {
	// The digest carries no per-package revision history to compare
	// against; freshness is entirely delegated to VerifyMembership's
	// witness check against the new digest.
	return true
}

func (a *RSA) UpdateSnapshot(_ Snapshot, diff Diff) Snapshot {
	return diff.(RSASnapshot)
}

func (a *RSA) VerifyMembership(snap Snapshot, pkg PackageID, revision Revision, proof Proof) bool {
	s := snap.(RSASnapshot)
	p := proof.(RSAProof)
	prime, err := bigprime.HashToPrime([]byte(pkg))
	if err != nil {
		return false
	}
	return a.acc.Verify(s.Digest, prime, uint64(revision), p.Witness)
}

func (a *RSA) Size() uint64 {
	total := a.acc.CurrentDigest().Size()
	for id, r := range a.revisions {
		total += id.Size() + r.Size()
	}
	return total
}
