package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/listkeep/internal/config"
	"github.com/nibzard/listkeep/internal/list"
	"github.com/nibzard/listkeep/internal/logging"
	"github.com/nibzard/listkeep/internal/store"
)

// session is everything a list command needs: a loaded Manager, its store
// and the run log.
type session struct {
	cfg    *config.Config
	store  store.Store
	mgr    *list.Manager
	logger *log.Logger
	logs   *logging.Session
}

// openSession validates cfg, opens the run log and the store, and loads the
// snapshot. Callers must Close the session.
func openSession(ctx context.Context, cfg *config.Config, command string) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := logging.Options{
		Dir:        cfg.LogDir,
		WorkDir:    cfg.ProjectRoot,
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
	}
	logs, err := logging.Setup(opts)
	var logger *log.Logger
	if err != nil {
		opts.Level = "warn"
		logger = logging.New(os.Stderr, opts)
		logger.Warn("file logging unavailable", "err", err)
	} else {
		logger = logs.Logger
	}
	logger = logger.With("command", command)

	st, err := store.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store, err)
	}

	mgr := list.New(st, list.WithKey(cfg.SnapshotKey), list.WithLogger(logger))
	mgr.Initialize(ctx)
	logger.Info("session started", "store", cfg.Store, "data_dir", cfg.DataDir, "key", cfg.SnapshotKey, "items", mgr.Len())

	return &session{
		cfg:    cfg,
		store:  st,
		mgr:    mgr,
		logger: logger,
		logs:   logs,
	}, nil
}

// Close releases the store and the run log.
func (s *session) Close() error {
	err := s.store.Close()
	if cerr := s.logs.Close(); err == nil {
		err = cerr
	}
	return err
}
