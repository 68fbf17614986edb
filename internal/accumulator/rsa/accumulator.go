// Package rsa implements the RSA accumulator: a constant-size digest over
// a fixed 2048-bit modulus that commits to a multiset of primes, with
// membership/non-membership witnesses maintained incrementally and a
// divide-and-conquer batch precomputation path for initial imports.
package rsa

import (
	"math/big"

	"github.com/repoauth/sssim/internal/accumulator"
	"github.com/repoauth/sssim/internal/bigprime"
	"github.com/repoauth/sssim/internal/multiset"
	"github.com/repoauth/sssim/internal/xassert"
)

// Accumulator is the server-side RSA accumulator state.
type Accumulator struct {
	digest      *big.Int
	members     *multiset.MultiSet[string]
	primesByKey map[string]bigprime.Prime
	proofCache  map[string]Witness

	log        []bigprime.Prime
	oldAccIdxs map[string]int
}

var _ accumulator.Accumulator = (*Accumulator)(nil)

// New returns an empty accumulator: digest = g, no members.
func New() *Accumulator {
	a := &Accumulator{
		digest:      new(big.Int).Set(Generator),
		members:     multiset.New[string](),
		primesByKey: make(map[string]bigprime.Prime),
		proofCache:  make(map[string]Witness),
		oldAccIdxs:  make(map[string]int),
	}
	a.oldAccIdxs[a.digest.String()] = 0
	return a
}

func (a *Accumulator) CurrentDigest() accumulator.Digest {
	return NewDigest(a.digest)
}

// AppendOnlyProof is the product of primes accumulated since some earlier
// digest; verification is a single modular exponentiation.
type AppendOnlyProof struct {
	pi *big.Int
}

func (p AppendOnlyProof) Size() uint64 {
	return uint64(len(p.pi.Bytes()))
}

// Increment folds one more occurrence of prime into the accumulator,
// maintaining every cached witness along the way. O(|members|) modular
// exponentiations: the cost batch precompute exists to amortize.
func (a *Accumulator) Increment(prime bigprime.Prime) {
	x := prime.Int()
	key := prime.String()
	oldDigest := new(big.Int).Set(a.digest)
	wasAbsent := a.members.Get(key) == 0

	for v, w := range a.proofCache {
		value := a.primesByKey[v].Int()
		memberDigest := w.Member.Int()

		newNonmember := w.Nonmember.Update(value, x, memberDigest)
		newMember := w.Member
		if v != key {
			updated := w.Member.Update(x)
			newMember = &updated
		}
		a.proofCache[v] = Witness{Member: newMember, Nonmember: newNonmember}
	}

	if wasAbsent {
		nonmember, ok := a.proveNonmemberLocked(prime)
		xassert.Assert(ok, "increment: prime %s unexpectedly already a member", key)
		member := NewMembershipWitness(oldDigest)
		a.proofCache[key] = Witness{Member: &member, Nonmember: nonmember}
		a.primesByKey[key] = prime
	}

	a.digest = powMod(a.digest, x)
	a.members.Insert(key)
	a.log = append(a.log, prime)
	a.oldAccIdxs[a.digest.String()] = len(a.log)
}

// Prove returns the cached witness for (prime, revision).
func (a *Accumulator) Prove(prime bigprime.Prime, revision uint64) (accumulator.Witness, bool) {
	key := prime.String()
	if uint64(a.members.Get(key)) != revision {
		return nil, false
	}
	if revision == 0 {
		nonmember, ok := a.proveNonmemberLocked(prime)
		if !ok {
			return nil, false
		}
		return ForZero(nonmember), true
	}
	w, ok := a.proofCache[key]
	if !ok {
		return nil, false
	}
	return w, true
}

// ProveNonmember returns a non-membership witness for prime, or false if
// prime is currently a member.
func (a *Accumulator) ProveNonmember(prime bigprime.Prime) (accumulator.Witness, bool) {
	w, ok := a.proveNonmemberLocked(prime)
	if !ok {
		return nil, false
	}
	return w, true
}

func (a *Accumulator) proveNonmemberLocked(prime bigprime.Prime) (NonMembershipWitness, bool) {
	key := prime.String()
	if a.members.Get(key) > 0 {
		return NonMembershipWitness{}, false
	}
	x := prime.Int()
	e := big.NewInt(1)
	for v, c := range a.membersSnapshot() {
		p := a.primesByKey[v].Int()
		e.Mul(e, new(big.Int).Exp(p, big.NewInt(int64(c)), nil))
	}

	gcd, s, t := bezout(e, x)
	xassert.Assert(gcd.Cmp(one) == 0, "prove nonmember: expected %s coprime to accumulated members", key)

	d := powMod(Generator, t)
	xassert.Assert(verifyNonmemberIdentity(a.digest, s, d, x),
		"prove nonmember: invariant violated for %s", key)

	return NonMembershipWitness{exp: s, base: d}, true
}

func (a *Accumulator) membersSnapshot() map[string]uint32 {
	out := make(map[string]uint32, a.members.Len())
	a.members.Iter(func(k string, c uint32) { out[k] = c })
	return out
}

// ProveAppendOnly returns a proof that the current digest was reached from
// old by accumulating elements only.
func (a *Accumulator) ProveAppendOnly(old accumulator.Digest) (accumulator.AppendOnlyProof, bool) {
	d, ok := old.(Digest)
	if !ok {
		return nil, false
	}
	idx, ok := a.oldAccIdxs[d.String()]
	if !ok {
		return nil, false
	}
	pi := big.NewInt(1)
	for _, p := range a.log[idx:] {
		pi.Mul(pi, p.Int())
	}
	return AppendOnlyProof{pi: pi}, true
}

// Verify checks a membership/non-membership witness for (prime, revision)
// against digest, including the nonmembership-against-membership-witness
// check that certifies revision uniqueness.
func (a *Accumulator) Verify(digest accumulator.Digest, prime bigprime.Prime, revision uint64, wit accumulator.Witness) bool {
	d, ok := digest.(Digest)
	if !ok {
		return false
	}
	w, ok := wit.(Witness)
	if !ok {
		return false
	}
	x := prime.Int()
	rev := new(big.Int).SetUint64(revision)

	if w.Member != nil {
		xRev := new(big.Int).Exp(x, rev, nil)
		expected := powMod(w.Member.Int(), xRev)
		if expected.Cmp(d.value) != 0 {
			return false
		}
		return verifyNonmemberIdentity(w.Member.Int(), w.Nonmember.exp, w.Nonmember.base, x)
	}
	if revision != 0 {
		return false
	}
	return verifyNonmemberIdentity(d.value, w.Nonmember.exp, w.Nonmember.base, x)
}

// VerifyAppendOnly checks old.value^π ≡ new.value (mod N).
func (a *Accumulator) VerifyAppendOnly(old accumulator.Digest, proof accumulator.AppendOnlyProof, new_ accumulator.Digest) bool {
	o, ok := old.(Digest)
	if !ok {
		return false
	}
	n, ok := new_.(Digest)
	if !ok {
		return false
	}
	p, ok := proof.(AppendOnlyProof)
	if !ok {
		return false
	}
	return powMod(o.value, p.pi).Cmp(n.value) == 0
}

// NewFromMultiset batch-imports (values, counts) in one divide-and-conquer
// pass, turning what would be O(n^2) naive witness construction into
// O(n log n) modular exponentiations.
func NewFromMultiset(values []bigprime.Prime, counts []uint32) *Accumulator {
	a := New()
	for i, v := range values {
		key := v.String()
		a.primesByKey[key] = v
		a.members.InsertN(key, counts[i])
		a.digest = powMod(a.digest, new(big.Int).Exp(v.Int(), big.NewInt(int64(counts[i])), nil))
	}

	if len(values) > 0 {
		witnesses := precompute(values, counts)
		for i, v := range values {
			a.proofCache[v.String()] = witnesses[i]
		}
	}
	a.oldAccIdxs = map[string]int{a.digest.String(): 0}
	return a
}

// precompute builds every membership/non-membership witness for
// (values, counts) in one divide-and-conquer pass.
func precompute(values []bigprime.Prime, counts []uint32) []Witness {
	eStar := productPow(values, counts)
	gcd, _, t := bezout(one, eStar)
	xassert.Assert(gcd.Cmp(one) == 0, "batch precompute: expected gcd(1, e*) == 1")

	proof := NonMembershipWitness{exp: new(big.Int).Set(one), base: powMod(Generator, t)}
	return precomputeHelper(values, counts, proof, Generator)
}

func precomputeHelper(values []bigprime.Prime, counts []uint32, proof NonMembershipWitness, g *big.Int) []Witness {
	if len(values) == 1 {
		if counts[0] > 1 {
			// proof certifies values[0]^counts[0]; raise its base to certify values[0] alone.
			rest := new(big.Int).Exp(values[0].Int(), big.NewInt(int64(counts[0]-1)), nil)
			proof = NonMembershipWitness{exp: proof.exp, base: powMod(proof.base, rest)}
		}
		xassert.Assert(verifyNonmemberIdentity(g, proof.exp, proof.base, values[0].Int()),
			"batch precompute: base case nonmembership identity violated for %s", values[0].String())
		mw := NewMembershipWitness(g)
		return []Witness{{Member: &mw, Nonmember: proof}}
	}

	mid := len(values) / 2
	valuesLeft, valuesRight := values[:mid], values[mid:]
	countsLeft, countsRight := counts[:mid], counts[mid:]

	membersLeft := productPow(valuesLeft, countsLeft)
	membersRight := productPow(valuesRight, countsRight)

	gLeft := powMod(g, membersLeft)
	gRight := powMod(g, membersRight)

	proofLeft := splitNonmember(proof, membersLeft, membersRight, g)
	proofRight := splitNonmember(proof, membersRight, membersLeft, g)

	left := precomputeHelper(valuesLeft, countsLeft, proofLeft, gRight)
	right := precomputeHelper(valuesRight, countsRight, proofRight, gLeft)

	return append(left, right...)
}

// splitNonmember derives the nonmembership witness valid for the combined
// exponent "mine" against g^partner, given a proof valid for mine*partner
// against g, using the same Bézout-reduction algebra as
// NonMembershipWitness.Update but applied to group exponents.
func splitNonmember(proof NonMembershipWitness, mine, partner, g *big.Int) NonMembershipWitness {
	gcd, s, t := bezout(mine, partner)
	xassert.Assert(gcd.Cmp(one) == 0, "batch precompute: expected coprime group exponents")

	qt := new(big.Int).Mul(proof.exp, t)
	q, r := new(big.Int), new(big.Int)
	q.DivMod(qt, mine, r)

	exponent := new(big.Int).Add(new(big.Int).Mul(q, partner), new(big.Int).Mul(proof.exp, s))
	newBase := new(big.Int).Mod(new(big.Int).Mul(powMod(proof.base, partner), powMod(g, exponent)), Modulus)

	return NonMembershipWitness{exp: r, base: newBase}
}

// productPow computes ∏ values[i]^counts[i] as a plain integer (used as an
// exponent, not reduced mod N).
func productPow(values []bigprime.Prime, counts []uint32) *big.Int {
	p := big.NewInt(1)
	for i, v := range values {
		p.Mul(p, new(big.Int).Exp(v.Int(), big.NewInt(int64(counts[i])), nil))
	}
	return p
}
