package nthroot

import (
	"fmt"
	"math"
	"math/big"
)

// Algorithm identifies a root extraction method. The declaration order is the
// tie-break preference of the dispatcher.
type Algorithm int

const (
	AlgorithmDigits Algorithm = iota
	AlgorithmNewton
	AlgorithmDoubling
)

// Algorithms lists every algorithm in preference order.
var Algorithms = []Algorithm{AlgorithmDigits, AlgorithmNewton, AlgorithmDoubling}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDigits:
		return "digits"
	case AlgorithmNewton:
		return "newton"
	case AlgorithmDoubling:
		return "doubling"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm is the inverse of Algorithm.String.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Cost is the heuristic work estimate of one algorithm for one input.
// Weight is dimensionless; it only orders algorithms against each other.
type Cost struct {
	Algorithm  Algorithm
	Weight     float64
	Applicable bool
}

// numeralBase is the base used both for digit-group accounting and by the
// digit-by-digit extractor.
const numeralBase = 10

var (
	log2Base       = math.Log2(numeralBase)
	log10Two       = math.Log10(2)
	log2NineTenths = math.Log2(numeralBase - 1) // log2(B^q - B^(q-1)) - (q-1)*log2(B)
)

// log10Big approximates log10(x) for x > 0 of any size from its top 64 bits.
func log10Big(x *big.Int) float64 {
	shift := x.BitLen() - 64
	if shift < 0 {
		shift = 0
	}
	top := new(big.Int).Rsh(x, uint(shift))
	f, _ := new(big.Float).SetInt(top).Float64()
	return math.Log10(f) + float64(shift)*log10Two
}

// rootQuotient is ceil(log10(radicand)/degree): the approximate decimal
// length of the root. Never less than 1.
func rootQuotient(radicand *big.Int, degree int) int {
	q := int(math.Ceil(log10Big(radicand) / float64(degree)))
	if q < 1 {
		q = 1
	}
	return q
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// EstimateCost returns the cost of one algorithm for radicand >= 2 and
// degree >= 1. The formulas are a rough model subject to tuning, not a
// measurement.
func EstimateCost(alg Algorithm, radicand *big.Int, degree int) Cost {
	quotient := float64(rootQuotient(radicand, degree))
	switch alg {
	case AlgorithmDigits:
		// digit groups × bits per binary search step
		return Cost{Algorithm: alg, Weight: 0.8 * quotient * (log2Base + 1), Applicable: true}
	case AlgorithmNewton:
		// log2(log2(B^q - B^(q-1))) * degree / 2 + 3
		bits := log2NineTenths + (quotient-1)*log2Base
		return Cost{Algorithm: alg, Weight: math.Log2(bits)*float64(degree)/2 + 3, Applicable: true}
	case AlgorithmDoubling:
		if !isPowerOfTwo(degree) {
			return Cost{Algorithm: alg, Weight: math.Inf(1)}
		}
		return Cost{Algorithm: alg, Weight: 0.2 * quotient * (log2Base + 1), Applicable: true}
	default:
		return Cost{Algorithm: alg, Weight: math.Inf(1)}
	}
}

// Estimate returns the cost of every algorithm, in preference order.
func Estimate(radicand *big.Int, degree int) []Cost {
	costs := make([]Cost, 0, len(Algorithms))
	for _, alg := range Algorithms {
		costs = append(costs, EstimateCost(alg, radicand, degree))
	}
	return costs
}

// choose picks the applicable cost with the lowest weight; earlier entries
// win ties.
func choose(costs []Cost) (Algorithm, error) {
	var best *Cost
	for i := range costs {
		c := &costs[i]
		if !c.Applicable {
			continue
		}
		if best == nil || c.Weight < best.Weight {
			best = c
		}
	}
	if best == nil {
		return 0, ErrUnsupportedAlgorithm
	}
	return best.Algorithm, nil
}

// Select returns the algorithm the dispatcher would use for the input.
func Select(radicand *big.Int, degree int) (Algorithm, error) {
	return choose(Estimate(radicand, degree))
}
