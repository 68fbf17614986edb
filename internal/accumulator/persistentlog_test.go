package accumulator

import (
	"math/big"
	"testing"

	"github.com/repoauth/sssim/internal/bigprime"
	"github.com/repoauth/sssim/internal/store"
)

type fakeAccumulator struct {
	incremented []bigprime.Prime
}

func (f *fakeAccumulator) CurrentDigest() Digest                                 { return nil }
func (f *fakeAccumulator) Increment(p bigprime.Prime)                            { f.incremented = append(f.incremented, p) }
func (f *fakeAccumulator) Prove(bigprime.Prime, uint64) (Witness, bool)          { return nil, false }
func (f *fakeAccumulator) ProveNonmember(bigprime.Prime) (Witness, bool)         { return nil, false }
func (f *fakeAccumulator) ProveAppendOnly(Digest) (AppendOnlyProof, bool)        { return nil, false }
func (f *fakeAccumulator) Verify(Digest, bigprime.Prime, uint64, Witness) bool   { return false }
func (f *fakeAccumulator) VerifyAppendOnly(Digest, AppendOnlyProof, Digest) bool { return false }

func TestPersistentLogRecordsIncrements(t *testing.T) {
	inner := &fakeAccumulator{}
	logged := NewPersistentLog(inner, store.NewMemory())

	p2 := bigprime.MustPrime(big.NewInt(2))
	p3 := bigprime.MustPrime(big.NewInt(3))
	logged.Increment(p2)
	logged.Increment(p3)

	if len(inner.incremented) != 2 {
		t.Fatalf("inner saw %d increments, want 2", len(inner.incremented))
	}

	replayed := logged.ReplayedPrimes()
	if len(replayed) != 2 {
		t.Fatalf("replayed %d entries, want 2", len(replayed))
	}
	if new(big.Int).SetBytes(replayed[0]).Int64() != 2 || new(big.Int).SetBytes(replayed[1]).Int64() != 3 {
		t.Fatalf("replayed primes = %v, want [2, 3] in order", replayed)
	}
}
