package nthroot

import "math/big"

// Exponentiator raises integers to non-negative powers. The extractors use it
// for the base-10 powers that repeat across calls with the same degree, so a
// memoizing implementation such as *powcache.Cache pays off.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: the returned value belongs to the caller.
type Exponentiator interface {
	PowCached(basement *big.Int, exponent int) (*big.Int, error)
}

// directPow is the Exponentiator used when none is configured.
type directPow struct{}

func (directPow) PowCached(basement *big.Int, exponent int) (*big.Int, error) {
	return pow(basement, exponent), nil
}

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(numeralBase)
)

// pow returns x^e as a new value. e must be non-negative.
func pow(x *big.Int, e int) *big.Int {
	return new(big.Int).Exp(x, big.NewInt(int64(e)), nil)
}
