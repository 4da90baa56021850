package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/liuk/internal/app"
	"github.com/abhisek/liuk/internal/applog"
	"github.com/abhisek/liuk/internal/bank"
	"github.com/abhisek/liuk/internal/config"
	"github.com/abhisek/liuk/internal/prefs"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/store"
	"github.com/abhisek/liuk/internal/wrongset"
)

// appEnv holds what every command opens: config, logger and store.
type appEnv struct {
	cfg    *config.Config
	logger *applog.Logger
	store  *store.Store
}

func openEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg := loadConfig(cmd)
	logger, err := applog.Open(cfg.LogPath, slog.LevelInfo)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Info("store opened", "path", dbPath)
	return &appEnv{cfg: cfg, logger: logger, store: st}, nil
}

func (r *appEnv) Close() {
	r.store.Close()
	r.logger.Close()
}

func (r *appEnv) loader() *bank.Loader {
	return bank.NewLoader(r.cfg.Questions,
		bank.WithTimeout(r.cfg.FetchTimeout),
		bank.WithLogger(r.logger.Logger),
	)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	rt, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	kv := rt.store.KV()
	d := &deps.Deps{
		Loader:   rt.loader(),
		Wrong:    wrongset.Open(ctx, kv, rt.logger.Logger),
		Prefs:    prefs.Open(ctx, kv, rt.logger.Logger, rt.cfg.Lang),
		Attempts: rt.store.AttemptRepo(),
		Logger:   rt.logger.Logger,
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(d, !noSplash)
}
