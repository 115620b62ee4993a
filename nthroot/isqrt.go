package nthroot

import (
	"math"
	"math/big"
)

// Magnitude tiers of ISqrt, in bits of the operand.
const (
	// float64 represents every integer below 2^53 exactly
	hardwareSqrtBits = 52
	// the root of a 106-bit operand still fits a float64 mantissa
	seededNewtonBits = 2 * 53
)

// ISqrt returns floor(sqrt(x)) for x >= 0. It panics on negative input,
// like big.Int.Sqrt.
//
// Small operands go straight through math.Sqrt, medium ones take a single
// Newton step from a float64 seed, and large ones double the precision of a
// hardware seed taken from the high-order bits until it covers the operand.
func ISqrt(x *big.Int) *big.Int {
	if x.Sign() < 0 {
		panic("nthroot: square root of negative number")
	}
	switch n := x.BitLen(); {
	case n <= hardwareSqrtBits:
		return sqrtHardware(x)
	case n <= seededNewtonBits:
		return sqrtSeeded(x)
	default:
		return sqrtDoubling(x)
	}
}

func sqrtHardware(x *big.Int) *big.Int {
	v := x.Uint64()
	r := uint64(math.Sqrt(float64(v)))
	// correctly rounded sqrt can land one off the floor
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return new(big.Int).SetUint64(r)
}

func sqrtSeeded(x *big.Int) *big.Int {
	f, _ := new(big.Float).SetInt(x).Float64()
	seed := new(big.Int).SetUint64(uint64(math.Sqrt(f)))
	if seed.Sign() == 0 {
		seed.SetInt64(1)
	}
	return newtonStep(x, seed)
}

// sqrtDoubling takes the root of the top half of x, which is correct to
// about a quarter of x's bits, scales it back up and doubles its precision
// with one Newton step. The recursion bottoms out in the float64 tiers.
func sqrtDoubling(x *big.Int) *big.Int {
	shift := uint(x.BitLen()/4) * 2
	high := new(big.Int).Rsh(x, shift)
	v := ISqrt(high)
	v.Lsh(v, shift/2)
	return newtonStep(x, v)
}

// newtonStep applies v = (v + x/v) / 2 once, then corrects downwards. For any
// v > 0 the step never lands below floor(sqrt(x)), so only overshoot needs
// fixing.
func newtonStep(x, v *big.Int) *big.Int {
	next := new(big.Int).Quo(x, v)
	next.Add(next, v)
	next.Rsh(next, 1)

	sq := new(big.Int)
	for sq.Mul(next, next).Cmp(x) > 0 {
		next.Sub(next, bigOne)
	}
	return next
}
