package rsa

import (
	"math/big"

	"github.com/repoauth/sssim/internal/accumulator"
	"github.com/repoauth/sssim/internal/sizeof"
)

// Digest is the accumulator's current authoritative value, an element of
// (Z/NZ)^*.
type Digest struct {
	value *big.Int
}

var _ accumulator.Digest = Digest{}

// NewDigest wraps v as a Digest. v is copied defensively.
func NewDigest(v *big.Int) Digest {
	return Digest{value: new(big.Int).Set(v)}
}

// IdentityDigest is the digest of an empty accumulator. g^0 mod N would be
// 1, but by convention the accumulator starts at the generator itself: the
// empty product accumulates to g.
func IdentityDigest() Digest {
	return Digest{value: new(big.Int).Set(Generator)}
}

func (d Digest) Int() *big.Int {
	return new(big.Int).Set(d.value)
}

func (d Digest) Equal(other accumulator.Digest) bool {
	o, ok := other.(Digest)
	if !ok {
		return false
	}
	return d.value.Cmp(o.value) == 0
}

func (d Digest) String() string {
	return d.value.String()
}

func (d Digest) Size() uint64 {
	return sizeof.RSADigestSize
}

// powMod computes base^exp mod Modulus.
func powMod(base, exp *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, Modulus)
}
