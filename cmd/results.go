package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mati2251/dhondt/internal/election"
	"github.com/mati2251/dhondt/internal/render"
)

func newResultsCmd(a *app) *cobra.Command {
	var (
		fromCassandra bool
		format        string
		opts          render.Options
	)
	cmd := &cobra.Command{
		Use:   "results [votes.json]",
		Short: "Compute the seat tally",
		Args: func(cmd *cobra.Command, args []string) error {
			if fromCassandra {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q", format)
			}
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			snap, err := a.snapshot(cmd.Context(), path, fromCassandra)
			if err != nil {
				return err
			}

			res, err := election.New(a.table,
				election.WithWorkers(a.cfg.Workers),
				election.WithLogger(a.logger),
			).Compute(cmd.Context(), snap)
			if err != nil {
				return err
			}

			if format == "json" {
				return render.JSON(cmd.OutOrStdout(), res)
			}
			return render.Text(cmd.OutOrStdout(), res, opts)
		},
	}
	cmd.Flags().BoolVar(&fromCassandra, "cassandra", false, "read votes from Cassandra instead of a file")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	cmd.Flags().BoolVar(&opts.Blocks, "blocks", false, "also print per-block awards")
	cmd.Flags().BoolVar(&opts.Districts, "districts", false, "also print per-district winners")
	return cmd
}
