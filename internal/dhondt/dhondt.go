// Package dhondt apportions the seats of one proportional block with the
// D'Hondt highest-averages method.
//
// Quotients are compared exactly as fractions (votes/divisor) using 128-bit
// cross products, so equal quotients such as 200000/5 and 120000/3 compare
// equal and fall through to the tie-break rules:
//
//  1. larger quotient first
//  2. larger party vote total first
//  3. smaller divisor first
//  4. party identifier ascending
package dhondt

import (
	"cmp"
	"errors"
	"math/bits"
	"slices"

	"github.com/mati2251/dhondt/internal/votes"
)

var ErrNoSeats = errors.New("seat count must be positive")

// Quotient is one party's vote total divided by a 1-based divisor.
type Quotient struct {
	Party   votes.Party
	Votes   uint64
	Divisor int
	Elected bool
}

// Value is for display only; ordering never uses it.
func (q Quotient) Value() float64 {
	return float64(q.Votes) / float64(q.Divisor)
}

// Compare orders quotients in award order: a negative result means q is
// awarded before o.
func (q Quotient) Compare(o Quotient) int {
	// q.Votes/q.Divisor vs o.Votes/o.Divisor  <=>  q.Votes*o.Divisor vs o.Votes*q.Divisor
	qh, ql := bits.Mul64(q.Votes, uint64(o.Divisor))
	oh, ol := bits.Mul64(o.Votes, uint64(q.Divisor))
	if n := cmp.Compare(oh, qh); n != 0 {
		return n
	}
	if n := cmp.Compare(ol, ql); n != 0 {
		return n
	}
	if n := cmp.Compare(o.Votes, q.Votes); n != 0 {
		return n
	}
	if n := cmp.Compare(q.Divisor, o.Divisor); n != 0 {
		return n
	}
	return cmp.Compare(q.Party, o.Party)
}

// Rank returns every quotient of the block in award order, the first seats
// of them marked Elected. Parties without votes contribute no quotients.
func Rank(b votes.BlockResult, seats int) ([]Quotient, error) {
	if seats < 1 {
		return nil, ErrNoSeats
	}
	if !b.HasVotes() {
		return nil, &votes.NoVotesError{Block: b.ID()}
	}

	table := make([]Quotient, 0, b.Len()*seats)
	for _, p := range b.Parties() {
		v := b.Votes(p)
		if v == 0 {
			continue
		}
		for d := 1; d <= seats; d++ {
			table = append(table, Quotient{Party: p, Votes: v, Divisor: d})
		}
	}
	slices.SortFunc(table, Quotient.Compare)

	// every party with votes has seats positive quotients, so the table
	// always holds at least seats entries
	for i := range seats {
		table[i].Elected = true
	}
	return table, nil
}

// Apportion returns the seats won per party. Only parties that won at least
// one seat appear; the counts sum to seats.
func Apportion(b votes.BlockResult, seats int) (map[votes.Party]int, error) {
	table, err := Rank(b, seats)
	if err != nil {
		return nil, err
	}
	won := make(map[votes.Party]int)
	for _, q := range table[:seats] {
		won[q.Party]++
	}
	return won, nil
}
