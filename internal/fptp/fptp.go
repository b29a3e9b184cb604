// Package fptp resolves single-member plurality districts.
package fptp

import (
	"github.com/mati2251/dhondt/internal/votes"
)

// Winner returns the candidate with the most votes. Ties go to the candidate
// that sorts first by name, then party.
func Winner(d votes.DistrictResult) (votes.Candidate, error) {
	candidates := d.Candidates()
	if len(candidates) == 0 {
		return votes.Candidate{}, &votes.EmptyDistrictError{District: d.ID()}
	}

	// candidates are sorted, so a strict > keeps the smallest tied one
	best := candidates[0]
	for _, c := range candidates[1:] {
		if d.Votes(c) > d.Votes(best) {
			best = c
		}
	}
	return best, nil
}

func Resolve(d votes.DistrictResult) (votes.Party, error) {
	c, err := Winner(d)
	if err != nil {
		return "", err
	}
	return c.Party, nil
}
