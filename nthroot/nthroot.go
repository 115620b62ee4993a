package nthroot

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jonwraymond/bigroot/observe"
)

// Result is the outcome of a root extraction.
//
// If Exact, Value^degree == radicand; otherwise
// Value^degree < radicand < (Value+1)^degree.
type Result struct {
	Value *big.Int
	Exact bool
}

// String formats the result as "value" or "~value".
func (r Result) String() string {
	if r.Exact {
		return r.Value.String()
	}
	return "~" + r.Value.String()
}

type extractFunc func(radicand *big.Int, degree int, exp Exponentiator) (Result, error)

var extractors = map[Algorithm]extractFunc{
	AlgorithmDigits:   byDigits,
	AlgorithmNewton:   byNewton,
	AlgorithmDoubling: byDoubling,
}

// Root is a root extraction engine. The zero value is not usable; use New.
// A Root only carries configuration and is safe for concurrent use.
type Root struct {
	exp    Exponentiator
	mw     *observe.Middleware
	logger observe.Logger
}

// Option configures a Root.
type Option func(*Root)

// WithExponentiator sets the exponentiation backend, typically a
// *powcache.Cache.
func WithExponentiator(e Exponentiator) Option {
	return func(r *Root) {
		if e != nil {
			r.exp = e
		}
	}
}

// WithMiddleware instruments every delegated extraction. The middleware's
// logger also becomes the engine's logger.
func WithMiddleware(mw *observe.Middleware) Option {
	return func(r *Root) {
		r.mw = mw
		if mw != nil {
			r.logger = mw.Logger()
		}
	}
}

// WithLogger sets the logger used for dispatcher failures.
func WithLogger(l observe.Logger) Option {
	return func(r *Root) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Root.
func New(opts ...Option) *Root {
	r := &Root{
		exp:    directPow{},
		logger: observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRoot = New()

// NthRoot returns the degree-th root of radicand using the default engine.
func NthRoot(radicand *big.Int, degree int) (Result, error) {
	return defaultRoot.NthRoot(radicand, degree)
}

// NthRoot returns the degree-th root of radicand.
func (r *Root) NthRoot(radicand *big.Int, degree int) (Result, error) {
	return r.NthRootContext(context.Background(), radicand, degree)
}

// NthRootContext is NthRoot with a context for tracing. The computation
// itself is not cancellable.
func (r *Root) NthRootContext(ctx context.Context, radicand *big.Int, degree int) (Result, error) {
	if err := validate(radicand, degree); err != nil {
		return Result{}, err
	}
	if res, ok := trivial(radicand); ok {
		return res, nil
	}

	alg, err := Select(radicand, degree)
	if err != nil {
		r.logger.Error(ctx, "root extraction dispatch failed",
			observe.Field{Key: "degree", Value: degree},
			observe.Field{Key: "radicand_bits", Value: radicand.BitLen()},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return Result{}, err
	}
	return r.run(ctx, alg, radicand, degree)
}

// Extract runs a specific algorithm, bypassing the cost model.
func (r *Root) Extract(ctx context.Context, alg Algorithm, radicand *big.Int, degree int) (Result, error) {
	if err := validate(radicand, degree); err != nil {
		return Result{}, err
	}
	if _, ok := extractors[alg]; !ok {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
	}
	if alg == AlgorithmDoubling && !isPowerOfTwo(degree) {
		return Result{}, fmt.Errorf("%w: %s needs a power of two, got %d", ErrNotApplicable, alg, degree)
	}
	if res, ok := trivial(radicand); ok {
		return res, nil
	}
	return r.run(ctx, alg, radicand, degree)
}

func (r *Root) run(ctx context.Context, alg Algorithm, radicand *big.Int, degree int) (Result, error) {
	extract := extractors[alg]
	if r.mw == nil {
		return extract(radicand, degree, r.exp)
	}

	var res Result
	op := observe.OpMeta{
		Operation:   "nthroot",
		Algorithm:   alg.String(),
		Degree:      degree,
		OperandBits: radicand.BitLen(),
	}
	err := r.mw.Wrap(func(_ context.Context, _ observe.OpMeta) error {
		var err error
		res, err = extract(radicand, degree, r.exp)
		return err
	})(ctx, op)
	return res, err
}

func validate(radicand *big.Int, degree int) error {
	switch {
	case radicand == nil:
		return ErrNilRadicand
	case radicand.Sign() < 0:
		return ErrNegativeRadicand
	case degree < 0:
		return ErrNegativeDegree
	case degree == 0:
		return ErrAmbiguousExponent
	}
	return nil
}

// trivial handles 0 and 1, which are their own roots for every degree.
func trivial(radicand *big.Int) (Result, bool) {
	if radicand.Cmp(bigOne) <= 0 {
		return Result{Value: new(big.Int).Set(radicand), Exact: true}, true
	}
	return Result{}, false
}
