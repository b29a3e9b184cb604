package cassandra

import (
	"context"
	"errors"
	"testing"

	gocql "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/stretchr/testify/require"

	"github.com/mati2251/dhondt/internal/regions"
	"github.com/mati2251/dhondt/internal/votes"
)

type fakeIter struct {
	rows   [][]any
	pos    int
	err    error
	closed bool
}

func (it *fakeIter) Scan(dest ...any) bool {
	if it.pos >= len(it.rows) {
		return false
	}
	row := it.rows[it.pos]
	it.pos++
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int64:
			*p = row[i].(int64)
		}
	}
	return true
}

func (it *fakeIter) Close() error {
	it.closed = true
	return it.err
}

func TestReadSnapshot(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	table := regions.Default()
	b := votes.NewBuilder()

	pr := &fakeIter{rows: [][]any{
		{"北海道", "ldp", int64(200000)},
		{"hokkaido", "cdp", int64(120000)},
	}}
	require.NoError(readBlocks(ctx, pr, table, b))
	require.True(pr.closed)

	fptp := &fakeIter{rows: [][]any{
		{"hokkaido-1", "a", "cdp", int64(100000)},
		{"hokkaido-1", "b", "ldp", int64(200000)},
	}}
	require.NoError(readDistricts(ctx, fptp, table, b))
	require.True(fptp.closed)

	snap := b.Build()
	blk, ok := snap.Block("hokkaido")
	require.True(ok)
	require.Equal(uint64(320000), blk.Total())

	d, ok := snap.District("hokkaido-1")
	require.True(ok)
	require.Equal(2, d.Len())
}

func TestReadErrors(t *testing.T) {
	ctx := context.Background()
	table := regions.Default()

	t.Run("unknown block", func(t *testing.T) {
		it := &fakeIter{rows: [][]any{{"atlantis", "ldp", int64(1)}}}
		err := readBlocks(ctx, it, table, votes.NewBuilder())
		var unknown *regions.UnknownRegionError
		require.ErrorAs(t, err, &unknown)
		require.True(t, it.closed)
	})

	t.Run("negative counter", func(t *testing.T) {
		it := &fakeIter{rows: [][]any{{"tokyo-1", "a", "ldp", int64(-4)}}}
		err := readDistricts(ctx, it, table, votes.NewBuilder())
		var invalid *votes.InvalidVoteCountError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("driver error on close", func(t *testing.T) {
		boom := errors.New("timeout")
		it := &fakeIter{err: boom}
		require.ErrorIs(t, readBlocks(ctx, it, table, votes.NewBuilder()), boom)
	})

	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		it := &fakeIter{rows: [][]any{{"tokyo", "ldp", int64(1)}}}
		require.ErrorIs(t, readBlocks(cctx, it, table, votes.NewBuilder()), context.Canceled)
	})
}

func TestParseConsistency(t *testing.T) {
	tests := map[string]gocql.Consistency{
		"":             gocql.Quorum,
		"QUORUM":       gocql.Quorum,
		"one":          gocql.One,
		"three":        gocql.Three,
		"local_quorum": gocql.LocalQuorum,
		"all":          gocql.All,
	}
	for in, want := range tests {
		got, err := parseConsistency(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := parseConsistency("most")
	require.Error(t, err)
}

func TestOpenRequiresHosts(t *testing.T) {
	_, err := Open(Config{Keyspace: "elections"}, nil)
	require.Error(t, err)
}
