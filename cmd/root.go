package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quantpath",
	Short: "12-week quant interview study tracker",
	Long: "QuantPath: a terminal study tracker for a 12-week quantitative finance\n" +
		"interview roadmap, with notes, a skill radar and an AI tutor.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(); err != nil {
			return err
		}
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database location: a file for sqlite/json, a URL for redis/postgres (overrides QUANTPATH_DB)")
	rootCmd.PersistentFlags().String("engine", "", "Storage engine: sqlite, json, redis, postgres or memory (overrides QUANTPATH_ENGINE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides QUANTPATH_LOG_LEVEL)")

	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(aiCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory. A missing file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// logLevel resolves --log-level, then QUANTPATH_LOG_LEVEL, then info.
func logLevel(cmd *cobra.Command) (slog.Level, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	if raw == "" {
		raw = os.Getenv("QUANTPATH_LOG_LEVEL")
	}
	var level slog.Level
	if raw == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(raw))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}

func setupLogging(cmd *cobra.Command) error {
	level, err := logLevel(cmd)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// storeConfig resolves the storage engine and its location. Flags win over
// QUANTPATH_ENGINE and QUANTPATH_DB; anything left empty gets the engine
// default.
func storeConfig(cmd *cobra.Command) (store.Config, error) {
	engine, _ := cmd.Flags().GetString("engine")
	if engine == "" {
		engine = os.Getenv("QUANTPATH_ENGINE")
	}
	if engine == "" {
		engine = store.EngineSQLite
	}
	engine = strings.ToLower(engine)

	dsn, _ := cmd.Flags().GetString("db")
	if dsn != "" && (engine == store.EngineSQLite || engine == store.EngineJSON) {
		if err := store.EnsureDir(dsn); err != nil {
			return store.Config{}, fmt.Errorf("create database directory: %w", err)
		}
	}
	return store.Config{Engine: engine, DSN: dsn}, nil
}
