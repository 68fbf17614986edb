// Package poke implements a Proof-of-Knowledge-of-Exponent proof over the
// RSA accumulator's fixed hidden-order group, per Boneh-Bünz-Fisch
// ("Batching Techniques for Accumulators...", BBF18 §5). It backs the
// accumulator's append-only scaffolding: rather than revealing the witness
// exponent x directly, the prover convinces a verifier that w = u^x for a
// secret x, without disclosing x.
package poke

import (
	"math/big"

	"github.com/repoauth/sssim/internal/accumulator/rsa"
	"github.com/repoauth/sssim/internal/bigprime"
	"github.com/repoauth/sssim/internal/sizeof"
	"github.com/repoauth/sssim/internal/xassert"
)

// Instance is the public statement: w = u^x for some secret x.
type Instance struct {
	W *big.Int
	U *big.Int
}

// Witness is the prover's secret exponent.
type Witness struct {
	X *big.Int
}

// Proof is the non-interactive PoKE transcript.
type Proof struct {
	Z *big.Int
	Q *big.Int
	R *big.Int
}

func (p Proof) Size() uint64 {
	return uint64(len(p.Z.Bytes())+len(p.Q.Bytes())+len(p.R.Bytes()))
}

var _ sizeof.DataSized = Proof{}

// fiatShamirBase derives the verifier's random group element g from the
// instance, in place of an interactive random challenge.
func fiatShamirBase(inst Instance) *big.Int {
	data := []byte(inst.W.String() + "|" + inst.U.String() + "|g")
	h, err := bigprime.HashToPrime(data)
	xassert.Assert(err == nil, "poke: fiat-shamir base derivation failed: %v", err)
	return new(big.Int).Mod(h.Int(), rsa.Modulus)
}

// fiatShamirPrime derives the challenge prime ell.
func fiatShamirPrime(inst Instance, g, z *big.Int) bigprime.Prime {
	data := []byte(inst.W.String() + "|" + inst.U.String() + "|" + g.String() + "|" + z.String() + "|ell")
	p, err := bigprime.HashToPrime(data)
	xassert.Assert(err == nil, "poke: fiat-shamir prime derivation failed: %v", err)
	return p
}

// fiatShamirScalar derives the challenge scalar alpha in [0, 2^lambda).
func fiatShamirScalar(inst Instance, g, z *big.Int, ell bigprime.Prime) *big.Int {
	data := []byte(inst.W.String() + "|" + inst.U.String() + "|" + g.String() + "|" + z.String() + "|" + ell.String() + "|alpha")
	h, err := bigprime.HashToPrime(data)
	xassert.Assert(err == nil, "poke: fiat-shamir scalar derivation failed: %v", err)
	return h.Int()
}

func powModN(base, exp *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, rsa.Modulus)
}

// Prove constructs a PoKE proof that instance.W = instance.U^witness.X,
// without revealing witness.X.
func Prove(instance Instance, witness Witness) Proof {
	xassert.Assert(powModN(instance.U, witness.X).Cmp(instance.W) == 0,
		"poke: witness does not satisfy instance")

	g := fiatShamirBase(instance)
	z := powModN(g, witness.X)

	ell := fiatShamirPrime(instance, g, z)
	alpha := fiatShamirScalar(instance, g, z, ell)

	q, r := new(big.Int), new(big.Int)
	q.DivMod(witness.X, ell.Int(), r)

	// Q = u^q * g^(alpha*q)
	Q := new(big.Int).Mod(new(big.Int).Mul(powModN(instance.U, q), powModN(g, new(big.Int).Mul(alpha, q))), rsa.Modulus)

	return Proof{Z: z, Q: Q, R: r}
}

// Verify checks a PoKE proof against instance.
func Verify(instance Instance, proof Proof) bool {
	g := fiatShamirBase(instance)
	ell := fiatShamirPrime(instance, g, proof.Z)
	alpha := fiatShamirScalar(instance, g, proof.Z, ell)

	if proof.R.Cmp(ell.Int()) >= 0 {
		return false
	}

	// lhs = Q^ell * u^r * g^(alpha*r)
	lhs := new(big.Int).Mod(new(big.Int).Mul(
		new(big.Int).Mul(powModN(proof.Q, ell.Int()), powModN(instance.U, proof.R)),
		powModN(g, new(big.Int).Mul(alpha, proof.R)),
	), rsa.Modulus)

	// rhs = w * z^alpha
	rhs := new(big.Int).Mod(new(big.Int).Mul(instance.W, powModN(proof.Z, alpha)), rsa.Modulus)

	return lhs.Cmp(rhs) == 0
}
