package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/app"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logFile, err := openLogFile(cmd)
	if err != nil {
		return err
	}
	defer logFile.Close()

	level, err := logLevel(cmd)
	if err != nil {
		return err
	}
	// Anything written to stderr would tear the alt screen.
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	d, err := openDeps(cmd, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	if !d.gateway.HasKey() {
		logger.Info("no API key configured, AI features disabled until one is set")
	}

	return app.Run(screen.Env{
		Ctx:     cmd.Context(),
		Tracker: d.tracker,
		Gateway: d.gateway,
		Logger:  logger,
	})
}

// openLogFile opens quantpath.log next to the sqlite/json database, or in the
// data directory for the network engines.
func openLogFile(cmd *cobra.Command) (*os.File, error) {
	cfg, err := storeConfig(cmd)
	if err != nil {
		return nil, err
	}

	var dir string
	switch {
	case cfg.DSN != "" && (cfg.Engine == store.EngineSQLite || cfg.Engine == store.EngineJSON):
		dir = filepath.Dir(cfg.DSN)
	default:
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve log directory: %w", err)
		}
		dir = filepath.Dir(p)
	}

	f, err := os.OpenFile(filepath.Join(dir, "quantpath.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
