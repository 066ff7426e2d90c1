// Package config reads jcheck settings from JCHECK_* environment
// variables. Command-line flags override these values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all jcheck configuration.
type Config struct {
	Journal JournalConfig
	Scan    ScanConfig
	Output  OutputConfig

	// Suite is a YAML suite path; empty runs the built-in sequence.
	Suite string

	// Timeout bounds the whole run; 0 disables it.
	Timeout time.Duration

	// Warnings lists variables that were set but unusable and fell back to
	// their defaults. Load runs before logging is configured, so callers
	// report them.
	Warnings []string
}

// JournalConfig selects and locates the journal backend.
type JournalConfig struct {
	Backend  string // "sqlite" or "redis"
	DBPath   string // SQLite file; empty means a temporary file
	RedisURL string
	RedisKey string
}

// ScanConfig bounds verification scans.
type ScanConfig struct {
	Limit   int           // entries per scan; 0 is unbounded
	Timeout time.Duration // per scan; 0 is unbounded
	Retries int           // extra scans after a miss
	Backoff time.Duration // delay before the first retry
}

// OutputConfig holds report and log settings.
type OutputConfig struct {
	Format   string // "text" or "json"
	LogLevel string
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var env envReader
	cfg := Config{
		Journal: JournalConfig{
			Backend:  env.getenv("JCHECK_BACKEND", BackendSQLite),
			DBPath:   os.Getenv("JCHECK_DB"),
			RedisURL: env.getenv("JCHECK_REDIS_URL", "redis://localhost:6379/0"),
			RedisKey: env.getenv("JCHECK_REDIS_KEY", "jcheck:journal"),
		},
		Scan: ScanConfig{
			Limit:   env.getenvInt("JCHECK_SCAN_LIMIT", 0),
			Timeout: env.getenvDuration("JCHECK_SCAN_TIMEOUT", 0),
			Retries: env.getenvInt("JCHECK_RETRIES", 0),
			Backoff: env.getenvDuration("JCHECK_RETRY_BACKOFF", 50*time.Millisecond),
		},
		Output: OutputConfig{
			Format:   env.getenv("JCHECK_FORMAT", "text"),
			LogLevel: env.getenv("JCHECK_LOG_LEVEL", "warn"),
		},
		Suite:   os.Getenv("JCHECK_SUITE"),
		Timeout: env.getenvDuration("JCHECK_TIMEOUT", 0),
	}
	cfg.Warnings = env.warnings
	return cfg
}

// envReader reads typed variables and records the ones it had to ignore.
type envReader struct {
	warnings []string
}

func (r *envReader) getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		r.ignore(key, v, "a non-negative integer", fallback)
		return fallback
	}
	return n
}

func (r *envReader) getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		r.ignore(key, v, "a non-negative duration", fallback)
		return fallback
	}
	return d
}

func (r *envReader) ignore(key, value, want string, fallback any) {
	r.warnings = append(r.warnings,
		fmt.Sprintf("%s=%q is not %s; using %v", key, value, want, fallback))
}
