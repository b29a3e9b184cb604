// Package render prints election results as aligned text or JSON.
package render

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/mati2251/dhondt/internal/dhondt"
	"github.com/mati2251/dhondt/internal/election"
	"github.com/mati2251/dhondt/internal/votes"
)

type Options struct {
	Blocks    bool
	Districts bool
}

func Text(w io.Writer, res *election.Result, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "PARTY\tFPTP\tPR\tTOTAL")
	for _, s := range res.Tally.Standings() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Party, s.FPTP, s.PR, s.Total)
	}
	fptp, pr := res.Tally.FptpTotal(), res.Tally.PrTotal()
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\n", fptp, pr, fptp+pr)

	if opts.Blocks && len(res.Blocks) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "BLOCK\tSEATS\tVOTES\tAWARDS")
		for _, b := range res.Blocks {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", b.Block, b.Seats, humanize.Comma(int64(b.Votes)), awards(b.Won))
		}
	}

	if opts.Districts && len(res.Districts) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "DISTRICT\tWINNER\tPARTY\tVOTES")
		for _, d := range res.Districts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.District, d.Winner.Name, d.Winner.Party, humanize.Comma(int64(d.Votes)))
		}
	}
	return tw.Flush()
}

// awards lists parties by seats won, most first: "ldp 5, cdp 3".
func awards(won map[votes.Party]int) string {
	parties := slices.SortedFunc(maps.Keys(won), func(a, b votes.Party) int {
		if n := cmp.Compare(won[b], won[a]); n != 0 {
			return n
		}
		return cmp.Compare(a, b)
	})
	parts := make([]string, len(parties))
	for i, p := range parties {
		parts[i] = fmt.Sprintf("%s %d", p, won[p])
	}
	return strings.Join(parts, ", ")
}

type partyJSON struct {
	Party string `json:"party"`
	FPTP  int    `json:"fptp"`
	PR    int    `json:"pr"`
	Total int    `json:"total"`
}

type blockJSON struct {
	Block string         `json:"block"`
	Seats int            `json:"seats"`
	Votes uint64         `json:"votes"`
	Won   map[string]int `json:"won"`
}

type districtJSON struct {
	District  string `json:"district"`
	Candidate string `json:"candidate"`
	Party     string `json:"party"`
	Votes     uint64 `json:"votes"`
}

type resultJSON struct {
	Parties   []partyJSON    `json:"parties"`
	Blocks    []blockJSON    `json:"blocks"`
	Districts []districtJSON `json:"districts"`
}

func JSON(w io.Writer, res *election.Result) error {
	out := resultJSON{
		Parties:   []partyJSON{},
		Blocks:    make([]blockJSON, 0, len(res.Blocks)),
		Districts: make([]districtJSON, 0, len(res.Districts)),
	}
	for _, s := range res.Tally.Standings() {
		out.Parties = append(out.Parties, partyJSON{Party: string(s.Party), FPTP: s.FPTP, PR: s.PR, Total: s.Total})
	}
	for _, b := range res.Blocks {
		won := make(map[string]int, len(b.Won))
		for p, n := range b.Won {
			won[string(p)] = n
		}
		out.Blocks = append(out.Blocks, blockJSON{Block: b.Block, Seats: b.Seats, Votes: b.Votes, Won: won})
	}
	for _, d := range res.Districts {
		out.Districts = append(out.Districts, districtJSON{
			District:  d.District,
			Candidate: d.Winner.Name,
			Party:     string(d.Winner.Party),
			Votes:     d.Votes,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Quotients prints a D'Hondt ranking, one row per quotient.
func Quotients(w io.Writer, block string, table []dhondt.Quotient) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "block %s\n", block)
	fmt.Fprintln(tw, "RANK\tPARTY\tVOTES\tDIVISOR\tQUOTIENT\tSEAT")
	for i, q := range table {
		seat := ""
		if q.Elected {
			seat = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			i+1, q.Party, humanize.Comma(int64(q.Votes)), q.Divisor, humanize.CommafWithDigits(q.Value(), 2), seat)
	}
	return tw.Flush()
}
