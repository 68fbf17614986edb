package bigprime

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashToPrimeDeterministic(t *testing.T) {
	p1, err := HashToPrime([]byte("openssl"))
	require.NoError(t, err)
	p2, err := HashToPrime([]byte("openssl"))
	require.NoError(t, err)
	require.Equal(t, 0, p1.Cmp(p2))
}

func TestHashToPrimeDiffers(t *testing.T) {
	p1, err := HashToPrime([]byte("openssl"))
	require.NoError(t, err)
	p2, err := HashToPrime([]byte("libc"))
	require.NoError(t, err)
	require.NotEqual(t, 0, p1.Cmp(p2))
}

func TestHashToPrimeIsPrime(t *testing.T) {
	p, err := HashToPrime([]byte("curl"))
	require.NoError(t, err)
	require.True(t, p.Int().ProbablyPrime(MillerRabinRounds))
}

func TestNewPrimeRejectsComposite(t *testing.T) {
	_, err := NewPrime(big.NewInt(4))
	require.ErrorIs(t, err, ErrNotPrime)
}

func TestNewPrimeAcceptsPrime(t *testing.T) {
	p, err := NewPrime(big.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, "7", p.String())
}
