package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mati2251/dhondt/internal/dhondt"
	"github.com/mati2251/dhondt/internal/render"
	"github.com/mati2251/dhondt/internal/votes"
)

func newExplainCmd(a *app) *cobra.Command {
	var (
		fromCassandra bool
		runnersUp     int
	)
	cmd := &cobra.Command{
		Use:   "explain [votes.json] <block>",
		Short: "Show the D'Hondt quotient ranking of one block",
		Args: func(cmd *cobra.Command, args []string) error {
			if fromCassandra {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if !fromCassandra {
				path, args = args[0], args[1:]
			}
			id, err := a.table.ResolveBlock(args[0])
			if err != nil {
				return err
			}
			seats, err := a.table.Seats(id)
			if err != nil {
				return err
			}

			snap, err := a.snapshot(cmd.Context(), path, fromCassandra)
			if err != nil {
				return err
			}
			blk, ok := snap.Block(id)
			if !ok {
				return &votes.NoVotesError{Block: id}
			}
			table, err := dhondt.Rank(blk, seats)
			if err != nil {
				return fmt.Errorf("block %s: %w", id, err)
			}
			if n := seats + max(runnersUp, 0); n < len(table) {
				table = table[:n]
			}
			return render.Quotients(cmd.OutOrStdout(), id, table)
		},
	}
	cmd.Flags().BoolVar(&fromCassandra, "cassandra", false, "read votes from Cassandra instead of a file")
	cmd.Flags().IntVar(&runnersUp, "runners-up", 3, "quotients to show after the last elected one")
	return cmd
}
