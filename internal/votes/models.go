package votes

import (
	"cmp"
	"maps"
	"math"
	"math/bits"
	"slices"
)

// MaxVotes is the largest count accepted for one candidate or party.
const MaxVotes = 1 << 53

type Party string

// Candidate is unique within its district only.
type Candidate struct {
	Name  string
	Party Party
}

func (c Candidate) Compare(o Candidate) int {
	if n := cmp.Compare(c.Name, o.Name); n != 0 {
		return n
	}
	return cmp.Compare(c.Party, o.Party)
}

func (c Candidate) String() string {
	return c.Name + " (" + string(c.Party) + ")"
}

// DistrictResult holds the raw counts of one single-member district.
type DistrictResult struct {
	id    string
	votes map[Candidate]uint64
}

func (d DistrictResult) ID() string { return d.id }
func (d DistrictResult) Len() int   { return len(d.votes) }

func (d DistrictResult) Votes(c Candidate) uint64 { return d.votes[c] }

func (d DistrictResult) Candidates() []Candidate {
	return slices.SortedFunc(maps.Keys(d.votes), Candidate.Compare)
}

// BlockResult holds the raw per-party counts of one proportional block.
type BlockResult struct {
	id    string
	votes map[Party]uint64
}

func (b BlockResult) ID() string { return b.id }
func (b BlockResult) Len() int   { return len(b.votes) }

func (b BlockResult) Votes(p Party) uint64 { return b.votes[p] }

func (b BlockResult) Parties() []Party {
	return slices.Sorted(maps.Keys(b.votes))
}

// HasVotes reports whether any party received at least one vote.
func (b BlockResult) HasVotes() bool {
	for _, v := range b.votes {
		if v > 0 {
			return true
		}
	}
	return false
}

// Total sums all party counts, saturating at math.MaxUint64.
func (b BlockResult) Total() uint64 {
	var total uint64
	for _, v := range b.votes {
		var carry uint64
		total, carry = bits.Add64(total, v, 0)
		if carry != 0 {
			return math.MaxUint64
		}
	}
	return total
}

// Snapshot is one complete, immutable set of district and block results.
// It is only constructed through a Builder.
type Snapshot struct {
	districts map[string]DistrictResult
	blocks    map[string]BlockResult
}

func (s *Snapshot) Districts() []string {
	return slices.Sorted(maps.Keys(s.districts))
}

func (s *Snapshot) Blocks() []string {
	return slices.Sorted(maps.Keys(s.blocks))
}

func (s *Snapshot) District(id string) (DistrictResult, bool) {
	d, ok := s.districts[id]
	return d, ok
}

func (s *Snapshot) Block(id string) (BlockResult, bool) {
	b, ok := s.blocks[id]
	return b, ok
}
