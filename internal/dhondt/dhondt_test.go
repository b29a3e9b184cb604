package dhondt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mati2251/dhondt/internal/votes"
)

func block(t *testing.T, id string, counts map[votes.Party]int64) votes.BlockResult {
	t.Helper()
	b := votes.NewBuilder().AddBlock(id)
	for p, v := range counts {
		require.NoError(t, b.AddPartyVotes(id, p, v))
	}
	blk, _ := b.Build().Block(id)
	return blk
}

func sum(m map[votes.Party]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func TestApportionHokkaido(t *testing.T) {
	require := require.New(t)
	blk := block(t, "hokkaido", map[votes.Party]int64{"cdp": 120000, "ldp": 200000})

	got, err := Apportion(blk, 8)
	require.NoError(err)
	require.Equal(map[votes.Party]int{"ldp": 5, "cdp": 3}, got)

	table, err := Rank(blk, 8)
	require.NoError(err)
	require.Len(table, 16)
	// 200000/5 == 120000/3: the larger party total goes first
	require.Equal(Quotient{Party: "ldp", Votes: 200000, Divisor: 5, Elected: true}, table[6])
	require.Equal(Quotient{Party: "cdp", Votes: 120000, Divisor: 3, Elected: true}, table[7])
	require.False(table[8].Elected)
	require.InDelta(33333.33, table[8].Value(), 0.01)
}

func TestApportionKnownResults(t *testing.T) {
	tests := []struct {
		name   string
		seats  int
		counts map[votes.Party]int64
		want   map[votes.Party]int
	}{
		{
			name:   "textbook",
			seats:  7,
			counts: map[votes.Party]int64{"a": 100000, "b": 80000, "c": 30000, "d": 20000},
			want:   map[votes.Party]int{"a": 3, "b": 3, "c": 1},
		},
		{
			name:   "single party",
			seats:  6,
			counts: map[votes.Party]int64{"only": 1},
			want:   map[votes.Party]int{"only": 6},
		},
		{
			name:   "tie at cutoff goes to smaller party id",
			seats:  1,
			counts: map[votes.Party]int64{"b": 100, "a": 100},
			want:   map[votes.Party]int{"a": 1},
		},
		{
			name:   "equal quotient prefers larger party",
			seats:  3,
			counts: map[votes.Party]int64{"big": 300, "small": 100},
			// 300/3 == 100/1; big wins the third seat
			want: map[votes.Party]int{"big": 3},
		},
		{
			name:   "zero vote party is ignored",
			seats:  4,
			counts: map[votes.Party]int64{"a": 10, "zero": 0},
			want:   map[votes.Party]int{"a": 4},
		},
		{
			name:   "huge counts compare exactly",
			seats:  2,
			counts: map[votes.Party]int64{"a": votes.MaxVotes, "b": votes.MaxVotes - 1},
			want:   map[votes.Party]int{"a": 1, "b": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apportion(block(t, "blk", tt.counts), tt.seats)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestApportionErrors(t *testing.T) {
	require := require.New(t)

	_, err := Apportion(block(t, "blk", map[votes.Party]int64{"a": 1}), 0)
	require.ErrorIs(err, ErrNoSeats)

	_, err = Apportion(block(t, "kinki", map[votes.Party]int64{"a": 0, "b": 0}), 28)
	var noVotes *votes.NoVotesError
	require.ErrorAs(err, &noVotes)
	require.Equal("kinki", noVotes.Block)

	_, err = Rank(block(t, "empty", nil), 3)
	require.ErrorAs(err, &noVotes)
}

func randomCounts(rng *rand.Rand) map[votes.Party]int64 {
	parties := []votes.Party{"cdp", "dpp", "ishin", "jcp", "komeito", "ldp", "reiwa", "sdp"}
	counts := make(map[votes.Party]int64)
	for _, p := range parties[:1+rng.Intn(len(parties))] {
		// small range makes colliding quotients common
		counts[p] = int64(rng.Intn(60)) * 1000
	}
	if len(counts) > 0 {
		counts[parties[0]] += 1000
	}
	return counts
}

func TestConservationAndNoSeatsFromZero(t *testing.T) {
	rng := rand.New(rand.NewSource(2017))
	for range 500 {
		counts := randomCounts(rng)
		seats := 1 + rng.Intn(30)
		got, err := Apportion(block(t, "blk", counts), seats)
		require.NoError(t, err)
		require.Equal(t, seats, sum(got))
		for p, n := range got {
			require.Positive(t, counts[p], "party %s won %d seats with no votes", p, n)
		}
	}
}

func TestMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(176))
	for range 300 {
		counts := randomCounts(rng)
		seats := 1 + rng.Intn(20)
		var target votes.Party
		for p := range counts {
			target = p
			break
		}

		before, err := Apportion(block(t, "blk", counts), seats)
		require.NoError(t, err)

		counts[target] += 1 + int64(rng.Intn(20000))
		after, err := Apportion(block(t, "blk", counts), seats)
		require.NoError(t, err)

		require.GreaterOrEqual(t, after[target], before[target], "counts %v", counts)
	}
}

func TestCompareIsTotal(t *testing.T) {
	require := require.New(t)
	a := Quotient{Party: "a", Votes: 200000, Divisor: 5}
	b := Quotient{Party: "b", Votes: 120000, Divisor: 3}
	require.Negative(a.Compare(b))
	require.Positive(b.Compare(a))
	require.Zero(a.Compare(a))

	c := Quotient{Party: "c", Votes: 120000, Divisor: 3}
	require.Negative(b.Compare(c))
}
