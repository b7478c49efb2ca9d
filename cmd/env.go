package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mahwas/Cognito/internal/config"
	"github.com/Mahwas/Cognito/internal/logger"
	"github.com/Mahwas/Cognito/internal/store"
)

// env is what every command that touches saved data needs.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store
	state store.StateRepo

	closers []func() error
}

// openEnv loads config, starts the file logger and opens SQLite plus the
// configured state backend.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = config.DefaultLogFile()
	}
	log, err := logger.New(logger.Options{
		Level:      cfg.Logging.Level,
		File:       logFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st}
	e.closers = append(e.closers, st.Close)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	switch cfg.Storage.Backend {
	case "redis":
		repo, err := store.NewRedisStateRepo(ctx, store.RedisOptions{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Key:      cfg.Storage.Redis.Key,
		}, log)
		if err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("open redis state: %w", err)
		}
		e.state = repo
		e.closers = append(e.closers, repo.Close)
	default:
		e.state = st.StateRepo(log)
	}

	log.Debug("environment ready", "db", dbPath, "backend", cfg.Storage.Backend)
	return e, nil
}

// Close releases the backends in reverse order and flushes the logger.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	e.log.Sync()
	return errors.Join(errs...)
}
