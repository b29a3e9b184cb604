package votes

import (
	"fmt"
	"strconv"
)

// Builder collects counts from a data source and produces a Snapshot.
// A Builder is not safe for concurrent use.
type Builder struct {
	districts map[string]map[Candidate]uint64
	blocks    map[string]map[Party]uint64
}

func NewBuilder() *Builder {
	return &Builder{
		districts: make(map[string]map[Candidate]uint64),
		blocks:    make(map[string]map[Party]uint64),
	}
}

// AddDistrict registers a district even if no candidate is ever added to it.
func (b *Builder) AddDistrict(district string) *Builder {
	if _, ok := b.districts[district]; !ok {
		b.districts[district] = make(map[Candidate]uint64)
	}
	return b
}

func (b *Builder) AddBlock(block string) *Builder {
	if _, ok := b.blocks[block]; !ok {
		b.blocks[block] = make(map[Party]uint64)
	}
	return b
}

// AddCandidate rejects counts outside [0, MaxVotes].
func (b *Builder) AddCandidate(district, name string, party Party, votes int64) error {
	c := Candidate{Name: name, Party: party}
	if votes < 0 || votes > MaxVotes {
		return &InvalidVoteCountError{Region: district, Entry: c.String(), Value: strconv.FormatInt(votes, 10)}
	}
	b.AddDistrict(district)
	if _, ok := b.districts[district][c]; ok {
		return fmt.Errorf("candidate %s in district %s: %w", c, district, ErrDuplicateEntry)
	}
	b.districts[district][c] = uint64(votes)
	return nil
}

func (b *Builder) AddPartyVotes(block string, party Party, votes int64) error {
	if votes < 0 || votes > MaxVotes {
		return &InvalidVoteCountError{Region: block, Entry: string(party), Value: strconv.FormatInt(votes, 10)}
	}
	b.AddBlock(block)
	if _, ok := b.blocks[block][party]; ok {
		return fmt.Errorf("party %s in block %s: %w", party, block, ErrDuplicateEntry)
	}
	b.blocks[block][party] = uint64(votes)
	return nil
}

// Build copies the collected counts, so later Add calls do not affect the
// returned Snapshot.
func (b *Builder) Build() *Snapshot {
	s := &Snapshot{
		districts: make(map[string]DistrictResult, len(b.districts)),
		blocks:    make(map[string]BlockResult, len(b.blocks)),
	}
	for id, counts := range b.districts {
		cp := make(map[Candidate]uint64, len(counts))
		for c, v := range counts {
			cp[c] = v
		}
		s.districts[id] = DistrictResult{id: id, votes: cp}
	}
	for id, counts := range b.blocks {
		cp := make(map[Party]uint64, len(counts))
		for p, v := range counts {
			cp[p] = v
		}
		s.blocks[id] = BlockResult{id: id, votes: cp}
	}
	return s
}
