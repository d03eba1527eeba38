package main

import (
	"fmt"
	"log/slog"

	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/config"
	"github.com/mandalnilabja/tokencost/internal/storage"
	"github.com/mandalnilabja/tokencost/internal/version"
	"github.com/spf13/cobra"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "tokencost",
		Short: "Estimate and compare LLM API costs",
		Long: `tokencost prices LLM usage across a catalog of models, compares models
for a workload, and projects daily, monthly and yearly spend.

Run without a subcommand to start the HTTP API.`,
		Version:       fmt.Sprintf("%s (%s)", version.Version, version.Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", fmt.Sprintf("config file (default is %s)", config.ConfigPath()))
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path")

	serve := newServeCmd(flags)
	root.AddCommand(serve, newModelsCmd(flags), newQuoteCmd(flags))
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

// loadConfig applies flag overrides on top of file and env config.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = f.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// services are the long-lived dependencies shared by subcommands.
type services struct {
	store   storage.Storage
	cache   *catalog.Cache
	catalog *catalog.Service
}

func openServices(cfg *config.Config, logger *slog.Logger) (*services, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	cache, err := catalog.NewCache(cfg.CacheMaxCost)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	svc := catalog.New(store, cache, logger)
	svc.SetDefaultCurrency(cfg.Currency)

	return &services{store: store, cache: cache, catalog: svc}, nil
}

func (s *services) Close() {
	s.cache.Close()
	s.store.Close()
}
