package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/spf13/cobra"
)

func newModelsCmd(flags *rootFlags) *cobra.Command {
	var (
		provider string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List catalog models and their prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}

			svc, err := openServices(cfg, setupLogger(cfg, os.Stderr))
			if err != nil {
				return err
			}
			defer svc.Close()

			entries, err := svc.catalog.List(provider)
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			return printModels(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "only list models from this provider")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func printModels(out io.Writer, entries []catalog.Entry) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROVIDER\tINPUT/1M\tOUTPUT/1M\tCONTEXT\tFEATURES\tSOURCE")
	for _, e := range entries {
		source := "built-in"
		if e.Custom {
			source = "custom"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s %s\t%d\t%s\t%s\n",
			e.ID, e.Provider,
			e.InputPricePerMillion, e.Currency,
			e.OutputPricePerMillion, e.Currency,
			e.ContextWindow, strings.Join(e.Features, ","), source)
	}
	return tw.Flush()
}
