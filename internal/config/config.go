package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultCassandraHosts = []string{"172.28.0.10", "172.28.0.11", "172.28.0.12", "172.28.0.13"}

type Config struct {
	SeatTable string
	Workers   int
	LogLevel  slog.Level

	CassandraHosts       []string
	CassandraKeyspace    string
	CassandraConsistency string
	CassandraTimeout     time.Duration
}

// Load reads the environment, after merging a .env file from the working
// directory if one exists. Variables already set win over the file.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return fromEnv(os.Getenv)
}

// loadDotEnv treats a missing file as empty; a file that fails to parse is an
// error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("invalid %s: %w", path, err)
}

func fromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		SeatTable:            getenv("DHONDT_SEAT_TABLE"),
		CassandraHosts:       splitList(getenv("CASSANDRA_HOSTS")),
		CassandraKeyspace:    getEnv(getenv, "CASSANDRA_KEYSPACE", "elections"),
		CassandraConsistency: getEnv(getenv, "CASSANDRA_CONSISTENCY", "quorum"),
	}
	if len(cfg.CassandraHosts) == 0 {
		cfg.CassandraHosts = defaultCassandraHosts
	}

	if raw := getenv("DHONDT_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid DHONDT_WORKERS %q", raw)
		}
		cfg.Workers = n
	}

	if raw := getenv("DHONDT_LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("invalid DHONDT_LOG_LEVEL: %w", err)
		}
	}

	cfg.CassandraTimeout = 10 * time.Second
	if raw := getenv("CASSANDRA_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CASSANDRA_TIMEOUT: %w", err)
		}
		cfg.CassandraTimeout = d
	}
	return cfg, nil
}

func getEnv(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
