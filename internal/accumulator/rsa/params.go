package rsa

import "math/big"

// modulusDecimal is the published RSA-2048 challenge number, used here as
// a fixed hidden-order group modulus (nobody is known to have factored
// it).
const modulusDecimal = "25195908475657893494027183240048398571429282126204032027777137836043662020707595556264018525880784406918290641249515082189298559149176184502808489120072844992687392807287776735971418347270261896375014971824691165077613379859095700097330459748808428401797429100642458691817195118746121515172654632282216869987549182422433637259085141865462043576798423387184774447920739934236584823824281198163815010674810451660377306056201619676256133844143603833904414952634432190114657544454178424020924616515723350778707749817125772467962926386356373289912154831438167899885040445364023527381951378636564391212010397122822120720357"

// generatorValue is the accumulator's generator, g = 65537: also the
// Fermat prime F4, chosen the same way RSA public exponents commonly are.
const generatorValue = 65537

var (
	// Modulus is the fixed RSA-2048 modulus N. All accumulator arithmetic
	// is performed mod N.
	Modulus = mustParseDecimal(modulusDecimal)
	// Generator is the fixed generator g used as the accumulator's base.
	Generator = big.NewInt(generatorValue)
)

func mustParseDecimal(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("rsa: invalid compiled-in modulus constant")
	}
	return n
}
