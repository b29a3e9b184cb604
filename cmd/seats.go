package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSeatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seats",
		Short: "Validate and print the seat table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the table was validated when it was loaded
			fmt.Fprintf(cmd.OutOrStdout(), "# %d blocks, %d PR seats, %d FPTP seats\n",
				len(a.table.Blocks), a.table.PRSeats, a.table.FPTPSeats)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.table); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
