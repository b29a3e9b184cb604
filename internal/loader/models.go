package loader

import "encoding/json"

type CandidateVotes struct {
	Name  string          `json:"candidate_name"`
	Party string          `json:"party"`
	Votes json.RawMessage `json:"votes"`
}

// VotesFile is the on-disk layout: PR blocks map party names to counts, FPTP
// districts list their candidates. Blocks may be keyed by any name the seat
// table resolves.
type VotesFile struct {
	PR   map[string]map[string]json.RawMessage `json:"pr"`
	FPTP map[string][]CandidateVotes           `json:"fptp"`
}
