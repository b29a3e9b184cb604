// Package election runs a full seat computation over one vote snapshot.
//
// Compute works in three steps:
//
//  1. a sequential validation pass, so every data error is reported before
//     any seat is recorded and the same bad input always yields the same error
//  2. a bounded pool of workers resolving districts and apportioning blocks,
//     each writing only its own result slot
//  3. a single-writer reduction of the slots into a fresh tally, in sorted
//     identifier order
//
// The result is identical for any worker count.
package election

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mati2251/dhondt/internal/dhondt"
	"github.com/mati2251/dhondt/internal/fptp"
	"github.com/mati2251/dhondt/internal/tally"
	"github.com/mati2251/dhondt/internal/votes"
)

// SeatLookup reports the configured seat count of a PR block.
type SeatLookup interface {
	Seats(block string) (int, error)
}

type Orchestrator struct {
	seats   SeatLookup
	workers int
	logger  *slog.Logger
}

type Option func(*Orchestrator)

// WithWorkers bounds the number of concurrent district/block tasks.
// Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n >= 1 {
			o.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func New(seats SeatLookup, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		seats:   seats,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type DistrictOutcome struct {
	District string
	Winner   votes.Candidate
	Votes    uint64
}

type BlockOutcome struct {
	Block string
	Seats int
	Votes uint64
	Won   map[votes.Party]int
}

// Result is the outcome of one Compute call. It is never modified after
// Compute returns.
type Result struct {
	Tally     *tally.Tally
	Districts []DistrictOutcome
	Blocks    []BlockOutcome
}

func (o *Orchestrator) Compute(ctx context.Context, snap *votes.Snapshot) (*Result, error) {
	start := time.Now()
	districtIDs := snap.Districts()
	blockIDs := snap.Blocks()

	blockSeats, err := o.validate(snap, districtIDs, blockIDs)
	if err != nil {
		o.logger.Warn("snapshot rejected", "error", err)
		return nil, err
	}

	res := &Result{
		Districts: make([]DistrictOutcome, len(districtIDs)),
		Blocks:    make([]BlockOutcome, len(blockIDs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, id := range districtIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, _ := snap.District(id)
			winner, err := fptp.Winner(d)
			if err != nil {
				return err
			}
			res.Districts[i] = DistrictOutcome{District: id, Winner: winner, Votes: d.Votes(winner)}
			return nil
		})
	}
	for i, id := range blockIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, _ := snap.Block(id)
			won, err := dhondt.Apportion(b, blockSeats[i])
			if err != nil {
				return fmt.Errorf("block %s: %w", id, err)
			}
			res.Blocks[i] = BlockOutcome{Block: id, Seats: blockSeats[i], Votes: b.Total(), Won: won}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Tally = tally.New()
	for _, d := range res.Districts {
		res.Tally.RecordFptpSeat(d.Winner.Party)
	}
	for _, b := range res.Blocks {
		for _, p := range slices.Sorted(maps.Keys(b.Won)) {
			res.Tally.RecordPrSeats(p, b.Won[p])
		}
	}

	o.logger.Debug("seats computed",
		"districts", len(districtIDs),
		"blocks", len(blockIDs),
		"workers", o.workers,
		"elapsed", time.Since(start))
	return res, nil
}

func (o *Orchestrator) validate(snap *votes.Snapshot, districtIDs, blockIDs []string) ([]int, error) {
	for _, id := range districtIDs {
		if d, _ := snap.District(id); d.Len() == 0 {
			return nil, &votes.EmptyDistrictError{District: id}
		}
	}
	seats := make([]int, len(blockIDs))
	for i, id := range blockIDs {
		n, err := o.seats.Seats(id)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("block %s: %w", id, dhondt.ErrNoSeats)
		}
		if b, _ := snap.Block(id); !b.HasVotes() {
			return nil, &votes.NoVotesError{Block: id}
		}
		seats[i] = n
	}
	return seats, nil
}
