package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mandalnilabja/tokencost/internal/app"
	"github.com/mandalnilabja/tokencost/internal/config"
	"github.com/mandalnilabja/tokencost/internal/tokenizer"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler"
	"github.com/mandalnilabja/tokencost/internal/transport/http/middleware/ratelimit"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		port      string
		rateLimit int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.ServerPort = port
			}
			if cmd.Flags().Changed("rate-limit") {
				cfg.RateLimitPerMinute = rateLimit
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Write a commented config on first run; ignore failures.
			_ = config.EnsureConfigFile()

			logger := setupLogger(cfg, os.Stdout)

			svc, err := openServices(cfg, logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			limiter := ratelimit.New(cfg.RateLimitPerMinute)
			repo := handler.NewRepo(handler.Deps{
				Storage:   svc.store,
				Catalog:   svc.catalog,
				Cache:     svc.cache,
				Tokenizer: tokenizer.New(),
				Options:   cfg.RecommendOptions(),
				Logger:    logger,
			})
			router := app.NewRouter(repo, app.RouterOptions{
				Logger:  logger,
				Limiter: limiter,
			})

			printStartupBanner(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.NewServer(cfg.ServerPort, router, limiter, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen address, e.g. :8080")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "requests per minute per client, 0 disables")

	return cmd
}
