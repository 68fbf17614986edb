package accumulator

import (
	"github.com/repoauth/sssim/internal/bigprime"
	"github.com/repoauth/sssim/internal/store"
)

// PersistentLog wraps an Accumulator and durably records every
// incremented prime, in order, to a store.Store. This is a standing audit
// trail of which file revisions were ever accumulated, independent of the
// wrapped accumulator's own internal bookkeeping. Useful for replaying or
// auditing a run after the fact; the live Prove/Verify path never reads
// it back.
type PersistentLog struct {
	inner Accumulator
	log   *store.Store
	seq   uint64
}

var _ Accumulator = (*PersistentLog)(nil)

// NewPersistentLog wraps inner, persisting increments to log.
func NewPersistentLog(inner Accumulator, log *store.Store) *PersistentLog {
	return &PersistentLog{inner: inner, log: log}
}

func (p *PersistentLog) CurrentDigest() Digest { return p.inner.CurrentDigest() }

func (p *PersistentLog) Increment(prime bigprime.Prime) {
	p.inner.Increment(prime)
	p.log.Set(store.SequenceKey(p.seq), prime.Int().Bytes())
	p.seq++
}

func (p *PersistentLog) Prove(prime bigprime.Prime, revision uint64) (Witness, bool) {
	return p.inner.Prove(prime, revision)
}

func (p *PersistentLog) ProveNonmember(prime bigprime.Prime) (Witness, bool) {
	return p.inner.ProveNonmember(prime)
}

func (p *PersistentLog) ProveAppendOnly(old Digest) (AppendOnlyProof, bool) {
	return p.inner.ProveAppendOnly(old)
}

func (p *PersistentLog) Verify(digest Digest, prime bigprime.Prime, revision uint64, w Witness) bool {
	return p.inner.Verify(digest, prime, revision, w)
}

func (p *PersistentLog) VerifyAppendOnly(old Digest, proof AppendOnlyProof, new Digest) bool {
	return p.inner.VerifyAppendOnly(old, proof, new)
}

// ReplayedPrimes reads back every persisted prime in increment order, as
// big-endian byte strings. Recovering a checked bigprime.Prime from raw
// bytes would mean re-running Miller-Rabin pointlessly; callers that need
// Prime values back should re-derive them with bigprime.HashToPrime on the
// package id instead.
func (p *PersistentLog) ReplayedPrimes() [][]byte {
	var out [][]byte
	p.log.Iterate(func(_, value []byte) bool {
		cp := append([]byte(nil), value...)
		out = append(out, cp)
		return true
	})
	return out
}
