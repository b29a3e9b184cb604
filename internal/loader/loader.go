// Package loader reads a JSON vote file into a votes.Snapshot.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mati2251/dhondt/internal/regions"
	"github.com/mati2251/dhondt/internal/votes"
)

func LoadFile(path string, table *regions.Table) (*votes.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open votes file: %w", err)
	}
	defer f.Close()
	return Load(f, table)
}

func Load(r io.Reader, table *regions.Table) (*votes.Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var data VotesFile
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return Convert(data, table)
}

// Convert resolves region names against the seat table and validates every
// count. Entries are visited in sorted order so the first reported error is
// stable.
func Convert(data VotesFile, table *regions.Table) (*votes.Snapshot, error) {
	b := votes.NewBuilder()

	for _, name := range slices.Sorted(maps.Keys(data.PR)) {
		block, err := table.ResolveBlock(name)
		if err != nil {
			return nil, err
		}
		b.AddBlock(block)
		parties := data.PR[name]
		for _, party := range slices.Sorted(maps.Keys(parties)) {
			n, err := parseCount(parties[party])
			if err != nil {
				return nil, &votes.InvalidVoteCountError{Region: block, Entry: party, Value: string(parties[party])}
			}
			if err := b.AddPartyVotes(block, votes.Party(party), n); err != nil {
				return nil, err
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(data.FPTP)) {
		district, err := table.ResolveDistrict(name)
		if err != nil {
			return nil, err
		}
		b.AddDistrict(district)
		for i, c := range data.FPTP[name] {
			if c.Name == "" {
				c.Name = "#" + strconv.Itoa(i+1)
			}
			if c.Party == "" {
				return nil, fmt.Errorf("district %s: candidate %s has no party", district, c.Name)
			}
			n, err := parseCount(c.Votes)
			if err != nil {
				return nil, &votes.InvalidVoteCountError{Region: district, Entry: c.Name, Value: string(c.Votes)}
			}
			if err := b.AddCandidate(district, c.Name, votes.Party(c.Party), n); err != nil {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}

// parseCount accepts integral JSON numbers, including ones written as floats
// ("1200.0"), from 0 to votes.MaxVotes. Strings, null and anything else are
// rejected.
func parseCount(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s[0] == '"' || s == "null" {
		return 0, fmt.Errorf("count %s is not a number", s)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 || v > votes.MaxVotes {
			return 0, fmt.Errorf("count %d out of range", v)
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) || f > votes.MaxVotes {
		return 0, fmt.Errorf("count %s is not a non-negative integer", s)
	}
	return int64(f), nil
}
