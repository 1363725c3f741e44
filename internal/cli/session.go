package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/config"
	"github.com/roach88/ritual/internal/engine"
	"github.com/roach88/ritual/internal/logging"
	"github.com/roach88/ritual/internal/metrics"
	"github.com/roach88/ritual/internal/model"
	"github.com/roach88/ritual/internal/store"
)

// session is everything a command needs: resolved config, logger, the open
// database, and a loaded engine.
type session struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Store
	repo     *store.Repository
	engine   *engine.Engine
	registry *prometheus.Registry
	out      *OutputFormatter
}

// openSession resolves configuration and opens the engine. Callers must
// Close the session.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.DBPath = opts.Database
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to configure logging", err)
	}

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	clock := opts.Clock
	if clock == nil {
		loc, err := cfg.Location()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to resolve timezone", err)
		}
		clock = engine.SystemClock{Location: loc}
	}
	ids := opts.IDs
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, WrapExitError(ExitFailure, "failed to create database directory", err)
	}
	out.VerboseLog("Opening database %s", cfg.DBPath)
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to open database", err)
	}

	repo := store.NewRepository(st, logger.Named("store"))
	registry := prometheus.NewRegistry()
	eng, err := engine.Open(cmd.Context(), repo,
		engine.WithClock(clock),
		engine.WithLogger(logger.Named("engine")),
		engine.WithMetrics(metrics.New(registry)),
		engine.WithIDGenerator(ids),
	)
	if err != nil {
		_ = st.Close()
		return nil, wrapEngineError("failed to load state", err)
	}
	if _, _, err := eng.Rollover(cmd.Context(), ""); err != nil {
		_ = st.Close()
		return nil, wrapEngineError("failed to roll over to today", err)
	}

	return &session{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		repo:     repo,
		engine:   eng,
		registry: registry,
		out:      out,
	}, nil
}

// Close releases the database and flushes the logger.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("Error closing database", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// withSession opens a session, runs fn, and closes the session.
func withSession(cmd *cobra.Command, opts *RootOptions, fn func(*session) error) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// parseRoutineArg reads a routine name from the command line.
func parseRoutineArg(arg string) (model.RoutineType, error) {
	t, err := model.ParseRoutineType(arg)
	if err != nil {
		return "", WrapExitError(ExitCommandError, fmt.Sprintf("unknown routine %q (want morning or night)", arg), err)
	}
	return t, nil
}
