package poke

import (
	"math/big"
	"testing"

	"github.com/repoauth/sssim/internal/accumulator/rsa"
	"github.com/stretchr/testify/require"
)

func TestProveVerifyRoundTrip(t *testing.T) {
	x := big.NewInt(12345)
	u := big.NewInt(7)
	w := new(big.Int).Exp(u, x, rsa.Modulus)

	instance := Instance{W: w, U: u}
	proof := Prove(instance, Witness{X: x})
	require.True(t, Verify(instance, proof))
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	x := big.NewInt(999)
	u := big.NewInt(11)
	w := new(big.Int).Exp(u, x, rsa.Modulus)

	instance := Instance{W: w, U: u}
	proof := Prove(instance, Witness{X: x})
	proof.R = new(big.Int).Add(proof.R, big.NewInt(1))
	require.False(t, Verify(instance, proof))
}

func TestSkipListAddAndRead(t *testing.T) {
	sl := NewSkipList[int, string]()
	sl.Add("a")
	sl.Add("b")
	sl.Add("c")
	require.Equal(t, 3, sl.Len())

	items := sl.Read(nil, -1, 2)
	require.Equal(t, []string{"a", "b", "c"}, items)
}
