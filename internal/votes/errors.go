package votes

import (
	"errors"
	"fmt"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

type EmptyDistrictError struct {
	District string
}

func (e *EmptyDistrictError) Error() string {
	return fmt.Sprintf("district %s has no candidates", e.District)
}

type NoVotesError struct {
	Block string
}

func (e *NoVotesError) Error() string {
	return fmt.Sprintf("block %s has no votes", e.Block)
}

// InvalidVoteCountError reports a count that is negative, non-finite or
// fractional. Region is the district or block, Entry the candidate or party.
type InvalidVoteCountError struct {
	Region string
	Entry  string
	Value  string
}

func (e *InvalidVoteCountError) Error() string {
	return fmt.Sprintf("invalid vote count %q for %s in %s", e.Value, e.Entry, e.Region)
}
