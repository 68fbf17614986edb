// Package accumulator defines the uniform interface over cryptographic
// accumulators: a short digest that commits to a multiset of primes and
// supports membership, non-membership and append-only witnesses.
package accumulator

import (
	"github.com/repoauth/sssim/internal/bigprime"
	"github.com/repoauth/sssim/internal/sizeof"
)

// Digest is the short authoritative value committing to the accumulator's
// current state.
type Digest interface {
	sizeof.DataSized
	// Equal reports whether two digests commit to the same state.
	Equal(other Digest) bool
	// String renders the digest for logging/output purposes.
	String() string
}

// Witness lets a verifier check a membership or non-membership claim
// against a Digest without recomputing the whole accumulator.
type Witness interface {
	sizeof.DataSized
}

// Accumulator is the server-side mutable accumulator: digest, increment,
// prove, and append-only proof, as in RSA-accumulator-style constructions.
type Accumulator interface {
	// CurrentDigest returns the current authoritative digest. O(1).
	CurrentDigest() Digest

	// Increment adds one more occurrence of prime to the accumulated
	// multiset: digest' = digest^prime, members[prime] += 1.
	Increment(prime bigprime.Prime)

	// Prove returns the cached witness for (prime, revision), or false if
	// members[prime] != revision.
	Prove(prime bigprime.Prime, revision uint64) (Witness, bool)

	// ProveNonmember returns a non-membership witness for prime, or false
	// if prime is currently a member.
	ProveNonmember(prime bigprime.Prime) (Witness, bool)

	// ProveAppendOnly returns a proof that the current digest was reached
	// from old by accumulating elements only.
	ProveAppendOnly(old Digest) (AppendOnlyProof, bool)

	// Verify checks a membership/non-membership witness for (prime,
	// revision) against digest.
	Verify(digest Digest, prime bigprime.Prime, revision uint64, w Witness) bool

	// VerifyAppendOnly checks an append-only proof between two digests.
	VerifyAppendOnly(old Digest, proof AppendOnlyProof, new Digest) bool
}

// AppendOnlyProof is the PoE-style evidence that new was reached from old
// by accumulating elements only.
type AppendOnlyProof interface {
	sizeof.DataSized
}
