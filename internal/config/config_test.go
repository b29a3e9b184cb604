package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	require := require.New(t)
	cfg, err := fromEnv(env(nil))
	require.NoError(err)

	require.Empty(cfg.SeatTable)
	require.Zero(cfg.Workers)
	require.Equal(slog.LevelInfo, cfg.LogLevel)
	require.Equal(defaultCassandraHosts, cfg.CassandraHosts)
	require.Equal("elections", cfg.CassandraKeyspace)
	require.Equal("quorum", cfg.CassandraConsistency)
	require.Equal(10*time.Second, cfg.CassandraTimeout)
}

func TestFromEnv(t *testing.T) {
	require := require.New(t)
	cfg, err := fromEnv(env(map[string]string{
		"DHONDT_SEAT_TABLE":     "tables/2022.yaml",
		"DHONDT_WORKERS":        "4",
		"DHONDT_LOG_LEVEL":      "debug",
		"CASSANDRA_HOSTS":       " 10.0.0.1, ,10.0.0.2 ",
		"CASSANDRA_KEYSPACE":    "hr",
		"CASSANDRA_CONSISTENCY": "one",
		"CASSANDRA_TIMEOUT":     "2s",
	}))
	require.NoError(err)

	require.Equal("tables/2022.yaml", cfg.SeatTable)
	require.Equal(4, cfg.Workers)
	require.Equal(slog.LevelDebug, cfg.LogLevel)
	require.Equal([]string{"10.0.0.1", "10.0.0.2"}, cfg.CassandraHosts)
	require.Equal("hr", cfg.CassandraKeyspace)
	require.Equal("one", cfg.CassandraConsistency)
	require.Equal(2*time.Second, cfg.CassandraTimeout)
}

func TestFromEnvRejects(t *testing.T) {
	for _, m := range []map[string]string{
		{"DHONDT_WORKERS": "many"},
		{"DHONDT_WORKERS": "-2"},
		{"DHONDT_LOG_LEVEL": "loud"},
		{"CASSANDRA_TIMEOUT": "soon"},
	} {
		_, err := fromEnv(env(m))
		require.Error(t, err, m)
	}
}

func TestLoadDotEnv(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	require.NoError(loadDotEnv(filepath.Join(dir, "missing.env")))

	bad := filepath.Join(dir, "bad.env")
	require.NoError(os.WriteFile(bad, []byte("DHONDT_WORKERS=\"4\nDHONDT_LOG_LEVEL=debug\n"), 0o600))
	err := loadDotEnv(bad)
	require.Error(err)
	require.Contains(err.Error(), bad)

	good := filepath.Join(dir, "good.env")
	require.NoError(os.WriteFile(good, []byte("DHONDT_DOTENV_CHECK=hr2017\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DHONDT_DOTENV_CHECK") })
	require.NoError(loadDotEnv(good))
	require.Equal("hr2017", os.Getenv("DHONDT_DOTENV_CHECK"))
}
