package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/bigroot/health"
)

func newHealthCmd(c *cli) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report memory and power cache health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			agg := health.NewAggregator(timeout)
			agg.Register(c.app.memory)
			agg.Register(health.Named("powcache", func(context.Context) health.Result {
				return health.Healthy(fmt.Sprintf("%d cached powers", c.app.cache.ItemsInCache()))
			}))

			results := agg.CheckAll(cmd.Context())
			out := cmd.OutOrStdout()
			for _, name := range agg.Names() {
				r := results[name]
				fmt.Fprintf(out, "%-9s %-9s %s\n", name, r.Status, r.Message)
			}
			overall := health.OverallStatus(results)
			fmt.Fprintf(out, "overall   %s\n", overall)
			if overall == health.StatusUnhealthy {
				return health.ErrCheckFailed
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "maximum time for all checks")
	return cmd
}
