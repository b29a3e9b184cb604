package tally

import (
	"cmp"
	"maps"
	"slices"

	"github.com/mati2251/dhondt/internal/votes"
)

// Tally counts FPTP and PR seats per party. Counters only ever grow.
// A Tally is not safe for concurrent writers.
type Tally struct {
	fptp map[votes.Party]int
	pr   map[votes.Party]int
}

type Standing struct {
	Party votes.Party `json:"party"`
	FPTP  int         `json:"fptp"`
	PR    int         `json:"pr"`
	Total int         `json:"total"`
}

func New() *Tally {
	return &Tally{
		fptp: make(map[votes.Party]int),
		pr:   make(map[votes.Party]int),
	}
}

func (t *Tally) RecordFptpSeat(p votes.Party) { t.fptp[p]++ }
func (t *Tally) RecordPrSeat(p votes.Party)   { t.pr[p]++ }

// RecordPrSeats records n PR seats at once; n <= 0 is ignored.
func (t *Tally) RecordPrSeats(p votes.Party, n int) {
	if n > 0 {
		t.pr[p] += n
	}
}

func (t *Tally) FptpSeats(p votes.Party) int  { return t.fptp[p] }
func (t *Tally) PrSeats(p votes.Party) int    { return t.pr[p] }
func (t *Tally) TotalSeats(p votes.Party) int { return t.fptp[p] + t.pr[p] }

func (t *Tally) FptpTotal() int { return total(t.fptp) }
func (t *Tally) PrTotal() int   { return total(t.pr) }

// Parties lists every party holding at least one seat, sorted by identifier.
func (t *Tally) Parties() []votes.Party {
	seen := maps.Clone(t.fptp)
	maps.Copy(seen, t.pr)
	return slices.Sorted(maps.Keys(seen))
}

// Standings returns one row per seated party, most seats first. Equal totals
// are ordered by FPTP seats, then party identifier.
func (t *Tally) Standings() []Standing {
	rows := make([]Standing, 0, len(t.fptp)+len(t.pr))
	for _, p := range t.Parties() {
		rows = append(rows, Standing{
			Party: p,
			FPTP:  t.fptp[p],
			PR:    t.pr[p],
			Total: t.TotalSeats(p),
		})
	}
	slices.SortStableFunc(rows, func(a, b Standing) int {
		if n := cmp.Compare(b.Total, a.Total); n != 0 {
			return n
		}
		return cmp.Compare(b.FPTP, a.FPTP)
	})
	return rows
}

func total(m map[votes.Party]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
