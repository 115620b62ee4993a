package nthroot

import "math/big"

// byDigits extracts the root one decimal digit at a time, most significant
// first. radicand must be >= 2.
func byDigits(radicand *big.Int, degree int, exp Exponentiator) (Result, error) {
	// every root digit consumes `degree` decimal digits of the radicand
	digitsShift, err := exp.PowCached(bigTen, degree)
	if err != nil {
		return Result{}, err
	}

	// chain[0] is the radicand, chain[len-1] its most significant slice
	chain := []*big.Int{radicand}
	for current := radicand; current.Cmp(digitsShift) >= 0; {
		current = new(big.Int).Quo(current, digitsShift)
		chain = append(chain, current)
	}

	bigDegree := big.NewInt(int64(degree))
	minResult := big.NewInt(1)
	maxResult := big.NewInt(numeralBase)
	result := new(big.Int)
	power := new(big.Int)
	exact := false

	for i := len(chain) - 1; i >= 0; i-- {
		slice := chain[i]
		exact = false

		if i != len(chain)-1 {
			result = new(big.Int).Mul(result, bigTen)
			power = new(big.Int).Mul(power, digitsShift)

			// Tangent y = k*x + b to x^degree at the previous estimate. The
			// curve is convex, so where the tangent reaches the slice is an
			// upper bound for the root.
			k := new(big.Int).Mul(bigDegree, power)
			k.Quo(k, result)
			b := new(big.Int).Mul(k, result)
			b.Sub(power, b)
			x := new(big.Int).Sub(slice, b)
			x.Quo(x, k).Add(x, bigOne)
			if x.Cmp(maxResult) < 0 {
				maxResult = x
			}
		}

		// binary search for d with d^degree <= slice < (d+1)^degree in [min, max)
		result = midpoint(minResult, maxResult)
		previous := new(big.Int)
		for previous.Cmp(result) != 0 {
			power = pow(result, degree)
			cmp := power.Cmp(slice)
			if cmp == 0 {
				exact = true
				break
			}
			previous = result
			if cmp < 0 {
				minResult = result
			} else {
				maxResult = result
			}
			result = midpoint(minResult, maxResult)
		}

		minResult = new(big.Int).Mul(result, bigTen)
		maxResult = new(big.Int).Add(result, bigOne)
		maxResult.Mul(maxResult, bigTen)
	}

	return Result{Value: result, Exact: exact}, nil
}

func midpoint(lo, hi *big.Int) *big.Int {
	m := new(big.Int).Add(lo, hi)
	return m.Rsh(m, 1)
}
