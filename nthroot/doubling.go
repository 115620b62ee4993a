package nthroot

import "math/big"

// byDoubling extracts roots of degree 2^k as k nested integer square roots,
// using floor(sqrt(floor(sqrt(x)))) == floor(x^(1/4)) and so on.
func byDoubling(radicand *big.Int, degree int, _ Exponentiator) (Result, error) {
	if !isPowerOfTwo(degree) {
		return Result{}, ErrNotApplicable
	}

	basement := new(big.Int).Set(radicand)
	for p := degree; p > 1; p >>= 1 {
		basement = ISqrt(basement)
	}

	exact := pow(basement, degree).Cmp(radicand) == 0
	return Result{Value: basement, Exact: exact}, nil
}
