package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/spf13/cobra"
)

// quoteOutput is the JSON form of a quote.
type quoteOutput struct {
	*catalog.Quote
	Projections map[string]pricing.HistoryComparison `json:"projections,omitempty"`
}

func newQuoteCmd(flags *rootFlags) *cobra.Command {
	var (
		inputTokens   int
		outputTokens  int
		queriesPerDay int
		historyTokens int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "quote MODEL_ID...",
		Short: "Compare the cost of a workload across models",
		Long: `Prices one query of the given size on every listed model, then ranks
the models and prints recommendations. With --queries-per-day the daily,
monthly and yearly spend is projected too, with and without history.`,
		Example: `  tokencost quote gpt-4o gpt-4o-mini claude-3-5-haiku --input 1200 --output 400
  tokencost quote gpt-4o-mini --input 800 --output 300 --queries-per-day 5000 --history 2000`,
		Args: cobra.MinimumNArgs(1),
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

			items := make([]catalog.QuoteItem, len(args))
			for i, id := range args {
				items[i] = catalog.QuoteItem{ModelID: id, InputTokens: inputTokens, OutputTokens: outputTokens}
			}

			quote, err := svc.catalog.Compare(items, cfg.RecommendOptions())
			if err != nil {
				return err
			}

			out := quoteOutput{Quote: quote}
			if queriesPerDay > 0 {
				usage := pricing.UsageProfile{
					QueriesPerDay:                     queriesPerDay,
					InputTokensPerQuery:               inputTokens,
					OutputTokensPerQuery:              outputTokens,
					ConversationHistoryTokensPerQuery: historyTokens,
				}
				out.Projections = make(map[string]pricing.HistoryComparison, len(quote.Calculations))
				for _, c := range quote.Calculations {
					model := c.Model
					out.Projections[model.ID] = pricing.CompareHistory(&model, usage)
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return printQuote(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVarP(&inputTokens, "input", "i", 1000, "input tokens per query")
	cmd.Flags().IntVarP(&outputTokens, "output", "o", 500, "output tokens per query")
	cmd.Flags().IntVarP(&queriesPerDay, "queries-per-day", "q", 0, "project spend for this many queries a day")
	cmd.Flags().IntVar(&historyTokens, "history", 0, "conversation history tokens carried per query")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func printQuote(out io.Writer, q quoteOutput) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tINPUT\tOUTPUT\tTOTAL")
	for _, c := range q.Calculations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Model.ID, c.InputCost, c.OutputCost, c.TotalCost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	a := q.Analysis
	fmt.Fprintf(out, "\ncheapest %s, most expensive %s, spread %s (%s%%)\n",
		a.Cheapest.Model.ID, a.MostExpensive.Model.ID,
		a.CostVariance, a.CostVariancePercentage.Round(2))

	if len(q.Recommendations) > 0 {
		fmt.Fprintln(out, "\n"+color.CyanString("Recommendations"))
		for _, r := range q.Recommendations {
			id := r.Calculation.Model.ID
			if r.Category == pricing.CategoryBestValue {
				id = color.GreenString(id)
			}
			fmt.Fprintf(out, "  %-16s %s: %s\n", r.Category, id, r.Reason)
		}
	}

	if len(q.Projections) > 0 {
		fmt.Fprintln(out)
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MODEL\tTOKENS/DAY\tDAILY\tMONTHLY\tYEARLY\tHISTORY +/YEAR")
		for _, c := range q.Calculations {
			p := q.Projections[c.Model.ID]
			tokens := p.WithHistory.TotalInputTokensPerDay.Add(p.WithHistory.TotalOutputTokensPerDay)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Model.ID, humanize.BigComma(tokens.BigInt()),
				p.WithHistory.DailyCost, p.WithHistory.MonthlyCost, p.WithHistory.YearlyCost,
				p.Impact.Yearly)
			if p.WithHistory.ExceedsContextWindow {
				fmt.Fprintf(tw, "\t%s\n", color.YellowString("warning: a query with history exceeds the %s context window", humanize.Comma(int64(c.Model.ContextWindow))))
			}
		}
		return tw.Flush()
	}
	return nil
}
