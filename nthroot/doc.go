// Package nthroot extracts integer Nth roots of arbitrary-precision
// non-negative integers.
//
// NthRoot returns the floor of the root together with a flag telling whether
// the root was extracted exactly. Three algorithms are available and the
// dispatcher picks one per call with a heuristic cost model:
//
//   - Digits: positional extraction in base 10, one root digit at a time,
//     with a binary search per digit. Wins for large degrees.
//   - Newton: integer Newton-Raphson iteration from a base-10 upper bound.
//   - Doubling: k successive integer square roots for degrees 2^k.
//
// # Usage
//
//	res, err := nthroot.NthRoot(big.NewInt(1000001), 2)
//	// res.Value == 1000, res.Exact == false
//
// An engine with memoized exponentiation and telemetry:
//
//	root := nthroot.New(
//	    nthroot.WithExponentiator(powcache.Default()),
//	    nthroot.WithMiddleware(mw),
//	)
//	res, err := root.NthRootContext(ctx, radicand, 3)
//
// All functions are safe for concurrent use; a Root holds no mutable state.
package nthroot
