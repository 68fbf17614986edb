package rsa

import (
	"math/big"

	"github.com/repoauth/sssim/internal/sizeof"
	"github.com/repoauth/sssim/internal/xassert"
)

// MembershipWitness for prime p is g^(product of all other members' prime
// powers) mod N; raising it to p^revision reproduces the full digest.
type MembershipWitness struct {
	v *big.Int
}

func NewMembershipWitness(v *big.Int) MembershipWitness {
	return MembershipWitness{v: new(big.Int).Set(v)}
}

func (m MembershipWitness) Int() *big.Int { return new(big.Int).Set(m.v) }

// Update raises the witness by value, reflecting one more occurrence of
// value having been accumulated elsewhere in the set.
func (m MembershipWitness) Update(value *big.Int) MembershipWitness {
	return MembershipWitness{v: powMod(m.v, value)}
}

func (m MembershipWitness) Size() uint64 { return sizeof.RSADigestSize }

// NonMembershipWitness certifies that value is absent from the set
// committed by some digest d via the identity d^exp * base^value ≡ g
// (mod N).
type NonMembershipWitness struct {
	exp  *big.Int
	base *big.Int
}

func NewNonMembershipWitness(exp, base *big.Int) NonMembershipWitness {
	return NonMembershipWitness{exp: new(big.Int).Set(exp), base: new(big.Int).Set(base)}
}

func (w NonMembershipWitness) Exp() *big.Int  { return new(big.Int).Set(w.exp) }
func (w NonMembershipWitness) Base() *big.Int { return new(big.Int).Set(w.base) }

func (w NonMembershipWitness) Size() uint64 { return 2 * sizeof.RSADigestSize }

// Update maintains the non-membership witness across the addition of
// newElement to the set committed by digest (the value this witness's
// invariant is currently checked against; for per-prime proof-cache
// entries this is the prime's own membership-witness value, not the
// accumulator's global digest). It is a no-op when value == newElement,
// since another occurrence of value leaves value's own membership witness,
// and so the proof that value is absent from it, unchanged.
func (w NonMembershipWitness) Update(value, newElement, digest *big.Int) NonMembershipWitness {
	xassert.Assert(verifyNonmemberIdentity(digest, w.exp, w.base, value),
		"nonmembership witness update: precondition violated for value=%s", value.String())

	if value.Cmp(newElement) == 0 {
		return w
	}

	gcd, s, t := bezout(value, newElement)
	xassert.Assert(gcd.Cmp(one) == 0, "nonmembership witness update: expected coprime values, gcd=%s", gcd.String())

	qt := new(big.Int).Mul(w.exp, t)
	q, r := new(big.Int), new(big.Int)
	q.DivMod(qt, value, r)

	newExp := r
	exponent := new(big.Int).Add(new(big.Int).Mul(q, newElement), new(big.Int).Mul(w.exp, s))
	newBase := new(big.Int).Mod(new(big.Int).Mul(w.base, powMod(digest, exponent)), Modulus)

	newDigest := powMod(digest, newElement)
	xassert.Assert(verifyNonmemberIdentity(newDigest, newExp, newBase, value),
		"nonmembership witness update: postcondition violated for value=%s", value.String())

	return NonMembershipWitness{exp: newExp, base: newBase}
}

// verifyNonmemberIdentity checks digest^exp * base^value ≡ Generator (mod N).
func verifyNonmemberIdentity(digest, exp, base, value *big.Int) bool {
	lhs := new(big.Int).Mod(new(big.Int).Mul(powMod(digest, exp), powMod(base, value)), Modulus)
	return lhs.Cmp(new(big.Int).Mod(Generator, Modulus)) == 0
}

// Witness bundles the membership and non-membership parts the accumulator
// hands back for a (prime, revision) claim. Member is nil exactly when
// revision == 0.
type Witness struct {
	Member    *MembershipWitness
	Nonmember NonMembershipWitness
}

// ForZero builds the witness for revision 0: no membership part, only the
// non-membership certificate.
func ForZero(nonmember NonMembershipWitness) Witness {
	return Witness{Nonmember: nonmember}
}

func (w Witness) Size() uint64 {
	var total uint64
	if w.Member != nil {
		total += w.Member.Size()
	} else {
		total += 1
	}
	return total + w.Nonmember.Size()
}

var one = big.NewInt(1)

// bezout returns (gcd, s, t) such that a*s + b*t = gcd, matching rug's
// gcd_cofactors. a and b must both be positive.
func bezout(a, b *big.Int) (gcd, s, t *big.Int) {
	gcd, s, t = new(big.Int), new(big.Int), new(big.Int)
	gcd.GCD(s, t, a, b)
	return gcd, s, t
}
