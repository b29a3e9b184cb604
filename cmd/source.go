package main

import (
	"context"

	"github.com/mati2251/dhondt/internal/cassandra"
	"github.com/mati2251/dhondt/internal/loader"
	"github.com/mati2251/dhondt/internal/votes"
)

// snapshot reads votes from the file at path, or from Cassandra when
// fromCassandra is set.
func (a *app) snapshot(ctx context.Context, path string, fromCassandra bool) (*votes.Snapshot, error) {
	if !fromCassandra {
		return loader.LoadFile(path, a.table)
	}

	src, err := cassandra.Open(cassandra.Config{
		Hosts:       a.cfg.CassandraHosts,
		Keyspace:    a.cfg.CassandraKeyspace,
		Consistency: a.cfg.CassandraConsistency,
		Timeout:     a.cfg.CassandraTimeout,
	}, a.logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Snapshot(ctx, a.table)
}
