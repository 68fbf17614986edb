// Package bigprime provides the checked Prime type and the hash-to-prime
// construction used by the RSA accumulator: an extendable-output hash is
// sampled repeatedly, each candidate run through 30 rounds of Miller-Rabin,
// until one comes back probably prime.
package bigprime

import (
	"math/big"

	"golang.org/x/crypto/sha3"
	"golang.org/x/xerrors"
)

// MillerRabinRounds is the number of Miller-Rabin rounds every candidate
// must pass before being accepted as probably prime.
const MillerRabinRounds = 30

// MaxHashToPrimeIterations bounds the rejection-sampling loop in
// HashToPrime; exhausting it means the input is pathological or broken.
const MaxHashToPrimeIterations = 10_000

// CandidateBytes is the width, in bytes, of each XOF sample consumed by
// HashToPrime (256 bits, matching the sparse Merkle tree's key width).
const CandidateBytes = 32

var (
	// ErrTooManyIterations is returned when HashToPrime exhausts its
	// rejection-sampling budget without finding a probable prime.
	ErrTooManyIterations = xerrors.New("hash-to-prime: too many iterations")
	// ErrNotPrime is returned by NewPrime when the given integer does not
	// pass Miller-Rabin.
	ErrNotPrime = xerrors.New("bigprime: candidate is not probably prime")
)

// Prime is a big integer that has passed MillerRabinRounds rounds of
// Miller-Rabin. It is only constructible through NewPrime or HashToPrime,
// so holding a Prime is a proof of that check having been performed.
type Prime struct {
	v *big.Int
}

// NewPrime checks n for primality and wraps it. n is not retained; callers
// may keep mutating their own copy after the call returns.
func NewPrime(n *big.Int) (Prime, error) {
	if !n.ProbablyPrime(MillerRabinRounds) {
		return Prime{}, ErrNotPrime
	}
	return Prime{v: new(big.Int).Set(n)}, nil
}

// MustPrime is NewPrime but panics on failure; used for compiled-in
// constants known to be prime.
func MustPrime(n *big.Int) Prime {
	p, err := NewPrime(n)
	if err != nil {
		panic(err)
	}
	return p
}

// Int returns a defensive copy of the underlying integer.
func (p Prime) Int() *big.Int {
	return new(big.Int).Set(p.v)
}

// Cmp compares two primes as integers.
func (p Prime) Cmp(o Prime) int {
	return p.v.Cmp(o.v)
}

// String renders the prime in decimal, matching how the log/workload JSON
// would serialize a large integer.
func (p Prime) String() string {
	return p.v.String()
}

// Size is the DataSized byte length of the prime's big-endian encoding.
func (p Prime) Size() uint64 {
	return uint64(len(p.v.Bytes()))
}

// HashToPrime derives a Prime deterministically from data: a Shake-256 XOF
// is seeded with data, then 32-byte chunks are read off in sequence (each
// interpreted as a little-endian integer, for cross-platform
// reproducibility) and tested with Miller-Rabin until one is probably
// prime or the iteration budget is exhausted.
func HashToPrime(data []byte) (Prime, error) {
	xof := sha3.NewShake256()
	_, _ = xof.Write(data)

	buf := make([]byte, CandidateBytes)
	for i := 0; i < MaxHashToPrimeIterations; i++ {
		if _, err := xof.Read(buf); err != nil {
			return Prime{}, xerrors.Errorf("hash-to-prime: reading xof: %w", err)
		}
		candidate := leBytesToInt(buf)
		if candidate.Sign() == 0 {
			continue
		}
		if p, err := NewPrime(candidate); err == nil {
			return p, nil
		}
	}
	return Prime{}, ErrTooManyIterations
}

// leBytesToInt interprets b as a little-endian unsigned integer.
// math/big only parses big-endian, so the bytes are reversed first.
func leBytesToInt(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, c := range b {
		rev[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(rev)
}
