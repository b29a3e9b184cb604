package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mati2251/dhondt/internal/config"
	"github.com/mati2251/dhondt/internal/regions"
)

type app struct {
	cfg    config.Config
	logger *slog.Logger
	table  *regions.Table

	seatTable string
	workers   int
	logLevel  string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "dhondt",
		Short:         "Allocate FPTP and D'Hondt PR seats from vote totals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.seatTable, "seats", "", "seat table YAML (default: embedded 2017 table, or DHONDT_SEAT_TABLE)")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "concurrent district/block tasks (default: DHONDT_WORKERS or GOMAXPROCS)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default: DHONDT_LOG_LEVEL or info)")

	root.AddCommand(newResultsCmd(a), newExplainCmd(a), newSeatsCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.seatTable != "" {
		cfg.SeatTable = a.seatTable
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = a.workers
	}
	if a.logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(a.logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))

	if cfg.SeatTable == "" {
		a.table = regions.Default()
		return nil
	}
	a.table, err = regions.LoadFile(cfg.SeatTable)
	if err != nil {
		return err
	}
	a.logger.Debug("seat table loaded", "path", cfg.SeatTable, "version", a.table.Version)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
