package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mandalnilabja/tokencost/internal/config"
	"github.com/mandalnilabja/tokencost/internal/version"
)

func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	return slog.New(handler)
}

func printStartupBanner(cfg *config.Config) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "tokencost %s - LLM cost estimator\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "API:     http://localhost%s/api\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Config:  %s\n", config.ConfigPath())
	fmt.Fprintf(os.Stderr, "Data:    %s\n", cfg.DBPath)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
