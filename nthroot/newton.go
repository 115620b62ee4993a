package nthroot

import "math/big"

// byNewton runs the integer Newton iteration for x^degree - radicand from an
// upper bound. radicand must be >= 2.
func byNewton(radicand *big.Int, degree int, exp Exponentiator) (Result, error) {
	current, err := exp.PowCached(bigTen, rootQuotient(radicand, degree))
	if err != nil {
		return Result{}, err
	}
	// The quotient comes from a float estimate; make sure the seed really is
	// an upper bound, the iteration only converges downwards.
	for pow(current, degree).Cmp(radicand) < 0 {
		current.Mul(current, bigTen)
	}

	bigDegree := big.NewInt(int64(degree))
	degreeLess := big.NewInt(int64(degree - 1))
	previous := new(big.Int)
	delta := new(big.Int)

	// Stops when the value settles or starts growing again: near the root the
	// integer iteration flips between the floor root and floor root + 1.
	for previous.Cmp(current) != 0 && delta.Sign() >= 0 {
		counterweight := pow(current, degree-1)
		previous = current

		next := new(big.Int).Mul(degreeLess, current)
		next.Add(next, new(big.Int).Quo(radicand, counterweight))
		next.Quo(next, bigDegree)

		current = next
		delta.Sub(previous, current)
	}

	exact := pow(previous, degree).Cmp(radicand) == 0
	return Result{Value: previous, Exact: exact}, nil
}
