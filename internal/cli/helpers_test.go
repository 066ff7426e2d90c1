package cli

import (
	"bytes"
	"testing"

	"github.com/roach88/jcheck/internal/config"
)

// testConfig is config.Load with every variable unset.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	for _, key := range []string{
		"JCHECK_BACKEND", "JCHECK_DB", "JCHECK_REDIS_URL", "JCHECK_REDIS_KEY",
		"JCHECK_SCAN_LIMIT", "JCHECK_SCAN_TIMEOUT", "JCHECK_RETRIES", "JCHECK_RETRY_BACKOFF",
		"JCHECK_FORMAT", "JCHECK_LOG_LEVEL", "JCHECK_SUITE", "JCHECK_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
	return config.Load()
}

// execute runs the root command with args and returns stdout, stderr and
// the Execute error.
func execute(t *testing.T, cfg config.Config, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommandWithConfig(cfg)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
