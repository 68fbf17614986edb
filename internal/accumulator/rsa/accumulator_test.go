package rsa

import (
	"testing"

	"github.com/repoauth/sssim/internal/bigprime"
	"github.com/stretchr/testify/require"
)

func mustPrime(t *testing.T, s string) bigprime.Prime {
	t.Helper()
	p, err := bigprime.HashToPrime([]byte(s))
	require.NoError(t, err)
	return p
}

func TestDefaultDigestIsGenerator(t *testing.T) {
	a := New()
	require.Equal(t, Generator.String(), a.CurrentDigest().String())
}

func TestIncrementProveVerifyRoundTrip(t *testing.T) {
	a := New()
	p := mustPrime(t, "openssl")
	a.Increment(p)

	w, ok := a.Prove(p, 1)
	require.True(t, ok)
	require.True(t, a.Verify(a.CurrentDigest(), p, 1, w))
}

func TestVerifyFailsOnWrongRevision(t *testing.T) {
	a := New()
	p := mustPrime(t, "openssl")
	a.Increment(p)

	w, ok := a.Prove(p, 1)
	require.True(t, ok)
	require.False(t, a.Verify(a.CurrentDigest(), p, 2, w))
}

func TestProveNonmemberForUnpublished(t *testing.T) {
	a := New()
	a.Increment(mustPrime(t, "openssl"))

	curl := mustPrime(t, "curl")
	w, ok := a.Prove(curl, 0)
	require.True(t, ok)
	require.True(t, a.Verify(a.CurrentDigest(), curl, 0, w))
}

func TestAppendOnlyProof(t *testing.T) {
	a := New()
	d0 := a.CurrentDigest()
	a.Increment(mustPrime(t, "a"))
	a.Increment(mustPrime(t, "b"))
	d2 := a.CurrentDigest()

	proof, ok := a.ProveAppendOnly(d0)
	require.True(t, ok)
	require.True(t, a.VerifyAppendOnly(d0, proof, d2))
}

func TestAppendOnlyProofFailsWithMissingFactor(t *testing.T) {
	a := New()
	d0 := a.CurrentDigest()
	a.Increment(mustPrime(t, "a"))
	d1 := a.CurrentDigest()
	a.Increment(mustPrime(t, "b"))
	d2 := a.CurrentDigest()

	proof, ok := a.ProveAppendOnly(d1)
	require.True(t, ok)
	require.False(t, a.VerifyAppendOnly(d0, proof, d2))
}

func TestBatchImportEquivalence(t *testing.T) {
	values := []bigprime.Prime{mustPrime(t, "a"), mustPrime(t, "b"), mustPrime(t, "c")}
	counts := []uint32{1, 2, 1}

	a := NewFromMultiset(values, counts)
	for i, v := range values {
		w, ok := a.Prove(v, uint64(counts[i]))
		require.True(t, ok, "missing witness for %s", v.String())
		require.True(t, a.Verify(a.CurrentDigest(), v, uint64(counts[i]), w))
	}
}
