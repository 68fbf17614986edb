package accumulator

import (
	"strconv"

	"github.com/repoauth/sssim/internal/bigprime"
)

// Caching wraps any Accumulator and memoizes Prove by (digest, prime,
// revision), so repeated requests for a witness that hasn't changed since
// it was last computed skip the underlying accumulator's witness-lookup
// work entirely. This backs the "rsa-cached" variant.
type Caching struct {
	inner Accumulator
	cache map[string]Witness
}

var _ Accumulator = (*Caching)(nil)

// NewCaching wraps inner with a Prove memoization layer.
func NewCaching(inner Accumulator) *Caching {
	return &Caching{inner: inner, cache: make(map[string]Witness)}
}

func (c *Caching) CurrentDigest() Digest { return c.inner.CurrentDigest() }

func (c *Caching) Increment(prime bigprime.Prime) { c.inner.Increment(prime) }

func (c *Caching) proveKey(prime bigprime.Prime, revision uint64) string {
	return c.inner.CurrentDigest().String() + "|" + prime.String() + "|" + strconv.FormatUint(revision, 10)
}

func (c *Caching) Prove(prime bigprime.Prime, revision uint64) (Witness, bool) {
	key := c.proveKey(prime, revision)
	if w, ok := c.cache[key]; ok {
		return w, true
	}
	w, ok := c.inner.Prove(prime, revision)
	if ok {
		c.cache[key] = w
	}
	return w, ok
}

func (c *Caching) ProveNonmember(prime bigprime.Prime) (Witness, bool) {
	return c.inner.ProveNonmember(prime)
}

func (c *Caching) ProveAppendOnly(old Digest) (AppendOnlyProof, bool) {
	return c.inner.ProveAppendOnly(old)
}

func (c *Caching) Verify(digest Digest, prime bigprime.Prime, revision uint64, w Witness) bool {
	return c.inner.Verify(digest, prime, revision, w)
}

func (c *Caching) VerifyAppendOnly(old Digest, proof AppendOnlyProof, new Digest) bool {
	return c.inner.VerifyAppendOnly(old, proof, new)
}
