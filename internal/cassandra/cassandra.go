// Package cassandra reads a vote snapshot from Cassandra counter tables:
//
//	CREATE TABLE pr_votes (
//	    block text, party text, votes counter,
//	    PRIMARY KEY (block, party));
//	CREATE TABLE fptp_votes (
//	    district text, candidate text, party text, votes counter,
//	    PRIMARY KEY (district, candidate, party));
//
// The source is read-only.
package cassandra

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/mati2251/dhondt/internal/regions"
	"github.com/mati2251/dhondt/internal/votes"
)

const (
	prQuery   = `SELECT block, party, votes FROM pr_votes`
	fptpQuery = `SELECT district, candidate, party, votes FROM fptp_votes`
)

type Config struct {
	Hosts       []string
	Keyspace    string
	Consistency string
	Timeout     time.Duration
}

type Source struct {
	session     *gocql.Session
	consistency gocql.Consistency
	logger      *slog.Logger
}

// rowIter is the part of *gocql.Iter the readers need.
type rowIter interface {
	Scan(dest ...any) bool
	Close() error
}

func Open(cfg Config, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	consistency, err := parseConsistency(cfg.Consistency)
	if err != nil {
		return nil, err
	}
	if len(cfg.Hosts) == 0 {
		return nil, fmt.Errorf("no cassandra hosts configured")
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = consistency
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra: %w", err)
	}
	logger.Info("connected to cassandra", "hosts", cfg.Hosts, "keyspace", cfg.Keyspace)
	return &Source{session: session, consistency: consistency, logger: logger}, nil
}

func (s *Source) Close() {
	s.session.Close()
}

// Snapshot reads both counter tables in full. Block names are resolved
// through the seat table, district names are validated by it.
func (s *Source) Snapshot(ctx context.Context, table *regions.Table) (*votes.Snapshot, error) {
	b := votes.NewBuilder()

	pr := s.session.Query(prQuery).Consistency(s.consistency).Iter()
	if err := readBlocks(ctx, pr, table, b); err != nil {
		return nil, fmt.Errorf("failed to read pr votes: %w", err)
	}
	fptp := s.session.Query(fptpQuery).Consistency(s.consistency).Iter()
	if err := readDistricts(ctx, fptp, table, b); err != nil {
		return nil, fmt.Errorf("failed to read fptp votes: %w", err)
	}

	snap := b.Build()
	s.logger.Debug("snapshot read", "blocks", len(snap.Blocks()), "districts", len(snap.Districts()))
	return snap, nil
}

func readBlocks(ctx context.Context, iter rowIter, table *regions.Table, b *votes.Builder) error {
	var name, party string
	var count int64
	for iter.Scan(&name, &party, &count) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return err
		}
		block, err := table.ResolveBlock(name)
		if err != nil {
			iter.Close()
			return err
		}
		if err := b.AddPartyVotes(block, votes.Party(party), count); err != nil {
			iter.Close()
			return err
		}
	}
	return iter.Close()
}

func readDistricts(ctx context.Context, iter rowIter, table *regions.Table, b *votes.Builder) error {
	var name, candidate, party string
	var count int64
	for iter.Scan(&name, &candidate, &party, &count) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return err
		}
		district, err := table.ResolveDistrict(name)
		if err != nil {
			iter.Close()
			return err
		}
		if err := b.AddCandidate(district, candidate, votes.Party(party), count); err != nil {
			iter.Close()
			return err
		}
	}
	return iter.Close()
}

func parseConsistency(s string) (gocql.Consistency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quorum":
		return gocql.Quorum, nil
	case "one":
		return gocql.One, nil
	case "two":
		return gocql.Two, nil
	case "three":
		return gocql.Three, nil
	case "all":
		return gocql.All, nil
	case "local_quorum":
		return gocql.LocalQuorum, nil
	case "local_one":
		return gocql.LocalOne, nil
	default:
		return 0, fmt.Errorf("unknown consistency level %q", s)
	}
}
