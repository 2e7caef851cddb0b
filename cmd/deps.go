package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/store"
	"github.com/abhisek/quantpath/internal/tutor"
)

// deps is everything a command needs from the data directory.
type deps struct {
	store   *store.Store
	tracker *progress.Tracker
	gateway *tutor.Gateway
	logger  *slog.Logger
}

// openStore opens the configured storage engine. A nil logger means
// slog.Default().
func openStore(cmd *cobra.Command, logger *slog.Logger) (*store.Store, error) {
	cfg, err := storeConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger
	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Engine, err)
	}
	return st, nil
}

// openDeps opens the store and builds the tracker and AI gateway on it.
func openDeps(cmd *cobra.Command, logger *slog.Logger) (*deps, error) {
	if logger == nil {
		logger = slog.Default()
	}
	st, err := openStore(cmd, logger)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	llmCfg := llm.ConfigFromEnv()
	factory := func(ctx context.Context, key string) (llm.Provider, error) {
		return llm.NewProvider(ctx, llmCfg.WithAPIKey(key), st.EventRepo(), logger)
	}

	tutorCfg := tutor.ConfigFromEnv()
	tutorCfg.EnvAPIKey = llmCfg.APIKey()
	if llmCfg.Provider == llm.ProviderMock {
		// The mock provider needs no credential but the gateway only builds
		// a client once it has one.
		tutorCfg.EnvAPIKey = llm.ProviderMock
	}

	return &deps{
		store:   st,
		tracker: progress.Open(ctx, st.StateRepo(), logger),
		gateway: tutor.New(ctx, st.CredentialRepo(), factory, tutorCfg, logger),
		logger:  logger,
	}, nil
}

func (d *deps) Close() error {
	return d.store.Close()
}
