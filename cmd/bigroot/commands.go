package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/bigroot/nthroot"
	"github.com/jonwraymond/bigroot/observe"
	"github.com/jonwraymond/bigroot/powcache"
)

// cli carries global flags and the app built for the running command.
type cli struct {
	configPath string
	logLevel   string
	logFile    string

	stderr io.Writer
	app    *app
}

func newRootCmd(c *cli, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bigroot",
		Short:        "Integer roots and powers of arbitrarily large integers",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	// "-4" parses as a shorthand flag unless it follows "--"
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w (use -- before negative operands)", err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&c.logLevel, "log-level", "", "override the log level (debug|info|warn|error)")
	flags.StringVar(&c.logFile, "log-file", "", "write logs to a rotating file instead of stderr")

	rootCmd.AddCommand(
		newNthRootCmd(c),
		newPowCmd(c),
		newEstimateCmd(),
		newFixturesCmd(c),
		newBenchCmd(c),
		newHealthCmd(c),
	)
	return rootCmd
}

func (c *cli) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Observe.Logging.Level = c.logLevel
	}
	if c.logFile != "" {
		cfg.Log.File = c.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, c.stderr)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) teardown(ctx context.Context) error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close(ctx)
	c.app = nil
	return err
}

func parseBig(name, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%s: %q is not a decimal integer", name, s)
	}
	return v, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", name, s)
	}
	return v, nil
}

func parseRootArgs(args []string) (*big.Int, int, error) {
	radicand, err := parseBig("radicand", args[0])
	if err != nil {
		return nil, 0, err
	}
	degree, err := parseInt("degree", args[1])
	if err != nil {
		return nil, 0, err
	}
	return radicand, degree, nil
}

func newNthRootCmd(c *cli) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "root [--] <radicand> <degree>",
		Short: "Print the integer degree-th root of radicand",
		Long: `Print floor(radicand^(1/degree)) followed by whether the root is exact.
The algorithm is picked by the cost model unless --algorithm is given.
Negative operands must follow "--", e.g. bigroot root -- -4 2.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			radicand, degree, err := parseRootArgs(args)
			if err != nil {
				return err
			}

			var res nthroot.Result
			if algorithm == "" {
				res, err = c.app.root.NthRootContext(cmd.Context(), radicand, degree)
			} else {
				alg, perr := nthroot.ParseAlgorithm(algorithm)
				if perr != nil {
					return perr
				}
				res, err = c.app.root.Extract(cmd.Context(), alg, radicand, degree)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s exact=%t\n", res.Value, res.Exact)
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "force an algorithm (digits|newton|doubling)")
	return cmd
}

func newPowCmd(c *cli) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "pow [--] <basement> <exponent>",
		Short: "Print basement raised to exponent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			basement, err := parseBig("basement", args[0])
			if err != nil {
				return err
			}
			exponent, err := parseInt("exponent", args[1])
			if err != nil {
				return err
			}

			var power *big.Int
			op := observe.OpMeta{Operation: "pow", Degree: exponent, OperandBits: basement.BitLen()}
			if cached {
				op.Algorithm = "cached"
			}
			err = c.app.mw.Wrap(func(context.Context, observe.OpMeta) error {
				var err error
				if cached {
					power, err = c.app.cache.PowCached(basement, exponent)
				} else {
					power, err = powcache.Pow(basement, exponent)
				}
				return err
			})(cmd.Context(), op)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), power)
			return nil
		},
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "use the memoizing power cache")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate [--] <radicand> <degree>",
		Short: "Print the cost model weights for an input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			radicand, degree, err := parseRootArgs(args)
			if err != nil {
				return err
			}
			if radicand.Cmp(big.NewInt(2)) < 0 || degree < 1 {
				return fmt.Errorf("estimate needs radicand >= 2 and degree >= 1")
			}

			out := cmd.OutOrStdout()
			for _, cost := range nthroot.Estimate(radicand, degree) {
				if cost.Applicable {
					fmt.Fprintf(out, "%-9s %.3f\n", cost.Algorithm, cost.Weight)
				} else {
					fmt.Fprintf(out, "%-9s n/a\n", cost.Algorithm)
				}
			}
			alg, err := nthroot.Select(radicand, degree)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "selected  %s\n", alg)
			return nil
		},
	}
}
