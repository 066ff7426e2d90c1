package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/jcheck/internal/config"
	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/redislog"
	"github.com/roach88/jcheck/internal/store"
)

// openJournal opens the configured backend. The returned cleanup closes the
// journal and removes any temporary SQLite directory.
func openJournal(ctx context.Context, opts *RunOptions, logger *slog.Logger) (journal.Journal, func(), error) {
	switch opts.Backend {
	case config.BackendRedis:
		j, err := redislog.Dial(ctx, opts.RedisURL, redislog.Options{
			Key:     opts.RedisKey,
			Cursors: opts.Cursors,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("journal ready", "backend", opts.Backend, "key", opts.RedisKey)
		return j, func() { closeJournal(j, logger) }, nil

	case config.BackendSQLite:
		path := opts.DBPath
		tmpDir := ""
		if path == "" {
			dir, err := os.MkdirTemp("", "jcheck-")
			if err != nil {
				return nil, nil, fmt.Errorf("create temp dir: %w", err)
			}
			tmpDir = dir
			path = filepath.Join(dir, "journal.db")
		}

		var storeOpts []store.Option
		if opts.Cursors != nil {
			storeOpts = append(storeOpts, store.WithCursorGenerator(opts.Cursors))
		}
		st, err := store.Open(path, storeOpts...)
		if err != nil {
			if tmpDir != "" {
				os.RemoveAll(tmpDir)
			}
			return nil, nil, err
		}

		logger.Info("journal ready", "backend", opts.Backend, "path", path)
		return st, func() {
			closeJournal(st, logger)
			if tmpDir != "" {
				os.RemoveAll(tmpDir)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", opts.Backend)
}

func closeJournal(j journal.Journal, logger *slog.Logger) {
	if err := j.Close(); err != nil {
		logger.Error("error closing journal", "error", err)
	}
}
