package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/bigroot/fixture"
	"github.com/jonwraymond/bigroot/observe"
	"github.com/jonwraymond/bigroot/randgen"
)

func newFixturesCmd(c *cli) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Generate or verify root extraction fixtures",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "fixture directory (default from config)")

	fixtureDir := func() string {
		if dir != "" {
			return dir
		}
		return c.app.cfg.Fixtures.Dir
	}

	cmd.AddCommand(newFixturesGenerateCmd(c, fixtureDir), newFixturesVerifyCmd(c, fixtureDir))
	return cmd
}

func newFixturesGenerateCmd(c *cli, fixtureDir func() string) *cobra.Command {
	var (
		seed    uint64
		count   int
		entries []int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the speed suite: exact powers of random basements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := randgen.NewRandom()
			if cmd.Flags().Changed("seed") {
				g = randgen.New(seed)
			}

			plan := fixture.SpeedPlan()
			if len(entries) == 0 {
				for i := range plan {
					entries = append(entries, i)
				}
			}

			dir := fixtureDir()
			written := 0
			for _, i := range entries {
				if i < 0 || i >= len(plan) {
					return fmt.Errorf("plan entry %d out of range [0, %d)", i, len(plan))
				}
				cases, err := fixture.Generate(g, plan[i], count)
				if err != nil {
					return err
				}
				paths, err := fixture.WritePlan(dir, i, cases)
				written += len(paths)
				if err != nil {
					return err
				}
				c.app.logger.Debug(cmd.Context(), "fixtures written",
					observe.Field{Key: "entry", Value: i},
					observe.Field{Key: "degree", Value: plan[i].Degree},
					observe.Field{Key: "basement_length", Value: plan[i].BasementLength},
				)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d fixtures to %s\n", written, dir)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().IntVar(&count, "count", fixture.CasesPerPlan, "cases per plan entry")
	cmd.Flags().IntSliceVar(&entries, "entry", nil, "plan entries to generate (default: all)")
	return cmd
}

func newFixturesVerifyCmd(c *cli, fixtureDir func() string) *cobra.Command {
	var parallelism int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every fixture against the root engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := fixture.LoadGlob(filepath.Join(fixtureDir(), "*.json"))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("parallelism") {
				parallelism = c.app.cfg.Fixtures.Parallelism
			}

			failures, err := fixture.Verify(cmd.Context(), c.app.root, cases, parallelism)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range failures {
				fmt.Fprintln(out, "FAIL", f.Error())
			}
			fmt.Fprintf(out, "%d/%d fixtures passed\n", len(cases)-len(failures), len(cases))
			if len(failures) > 0 {
				return fmt.Errorf("%d fixtures failed: %w", len(failures), fixture.ErrMismatch)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "cases verified concurrently (default from config, 0: GOMAXPROCS)")
	return cmd
}
