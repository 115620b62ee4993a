package fixture

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/bigroot/nthroot"
)

// Rooter extracts integer roots. *nthroot.Root satisfies it.
type Rooter interface {
	NthRootContext(ctx context.Context, radicand *big.Int, degree int) (nthroot.Result, error)
}

// Failure describes one case whose root did not match.
type Failure struct {
	Case Case
	Got  nthroot.Result
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: degree %d: got %s exact=%v, want %s exact=%v",
		f.Case.Name, f.Case.Degree, f.Got.Value, f.Got.Exact, f.Case.Basement, f.Case.IsExact)
}

func (f Failure) Unwrap() error {
	return ErrMismatch
}

// Verify extracts the root of every case with at most limit cases in
// flight; limit <= 0 means GOMAXPROCS. Mismatches are collected and
// returned sorted by name; an extraction error stops the run and is returned instead.
func Verify(ctx context.Context, r Rooter, cases []Case, limit int) ([]Failure, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var (
		mu       sync.Mutex
		failures []Failure
	)
	for _, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			got, err := r.NthRootContext(ctx, c.Power, c.Degree)
			if err != nil {
				return fmt.Errorf("fixture: %s: %w", c.Name, err)
			}
			if got.Value.Cmp(c.Basement) != 0 || got.Exact != c.IsExact {
				mu.Lock()
				failures = append(failures, Failure{Case: c, Got: got})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.SortFunc(failures, func(a, b Failure) int { return strings.Compare(a.Case.Name, b.Case.Name) })
	return failures, nil
}
