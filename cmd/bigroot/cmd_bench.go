package main

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/bigroot/fixture"
	"github.com/jonwraymond/bigroot/nthroot"
)

type benchKey struct {
	degree int
	alg    nthroot.Algorithm
}

func newBenchCmd(c *cli) *cobra.Command {
	var (
		dir      string
		rounds   int
		maxRatio float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every applicable algorithm on the fixture suite",
		Long: `Run the applicable algorithms on every fixture and print a moving
average of the time per degree, next to the algorithm the cost model picks.
Algorithms estimated to cost more than --max-ratio times the selected one are
skipped; Newton at high degrees can take minutes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = c.app.cfg.Fixtures.Dir
			}
			if rounds < 1 {
				return fmt.Errorf("rounds must be positive, got %d", rounds)
			}
			cases, err := fixture.LoadGlob(filepath.Join(dir, "*.json"))
			if err != nil {
				return err
			}

			avgs := make(map[benchKey]ewma.MovingAverage)
			selected := make(map[int]nthroot.Algorithm)
			for round := 0; round < rounds; round++ {
				for _, fc := range cases {
					if _, ok := selected[fc.Degree]; !ok {
						alg, err := nthroot.Select(fc.Power, fc.Degree)
						if err != nil {
							return err
						}
						selected[fc.Degree] = alg
					}

					limit := nthroot.EstimateCost(selected[fc.Degree], fc.Power, fc.Degree).Weight * maxRatio
					for _, alg := range nthroot.Algorithms {
						cost := nthroot.EstimateCost(alg, fc.Power, fc.Degree)
						if !cost.Applicable || (maxRatio > 0 && cost.Weight > limit) {
							continue
						}
						start := time.Now()
						res, err := c.app.root.Extract(cmd.Context(), alg, fc.Power, fc.Degree)
						elapsed := time.Since(start)
						if err != nil {
							return fmt.Errorf("%s: %s: %w", fc.Name, alg, err)
						}
						if res.Value.Cmp(fc.Basement) != 0 || res.Exact != fc.IsExact {
							return fmt.Errorf("%w: %s: %s", fixture.ErrMismatch, fc.Name, alg)
						}

						key := benchKey{degree: fc.Degree, alg: alg}
						avg, ok := avgs[key]
						if !ok {
							avg = ewma.NewMovingAverage()
							avgs[key] = avg
						}
						avg.Add(float64(elapsed.Microseconds()) / 1000)
					}
				}
			}

			keys := make([]benchKey, 0, len(avgs))
			for k := range avgs {
				keys = append(keys, k)
			}
			slices.SortFunc(keys, func(a, b benchKey) int {
				if n := cmp.Compare(a.degree, b.degree); n != 0 {
					return n
				}
				return cmp.Compare(a.alg, b.alg)
			})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DEGREE\tALGORITHM\tAVG MS\tSELECTED")
			for _, k := range keys {
				mark := ""
				if selected[k.degree] == k.alg {
					mark = "*"
				}
				fmt.Fprintf(tw, "%d\t%s\t%.3f\t%s\n", k.degree, k.alg, avgs[k].Value(), mark)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "fixture directory (default from config)")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "passes over the fixture suite")
	cmd.Flags().Float64Var(&maxRatio, "max-ratio", 10, "skip algorithms estimated this many times slower than the selected one (0: run all)")
	return cmd
}
