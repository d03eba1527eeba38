package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RecommendOptions holds the tuning knobs of the recommendation heuristics.
type RecommendOptions struct {
	// BudgetMultiplier bounds budget-friendly picks to this multiple of the
	// cheapest cost.
	BudgetMultiplier decimal.Decimal
	// PremiumMinFeatures is the feature count a premium pick must reach.
	PremiumMinFeatures int
	// PremiumMinModels is the set size above which a premium pick is made.
	PremiumMinModels int
	// MaxResults caps the number of recommendations.
	MaxResults int
}

// DefaultRecommendOptions returns the stock heuristic constants.
func DefaultRecommendOptions() RecommendOptions {
	return RecommendOptions{
		BudgetMultiplier:   decimal.RequireFromString("1.5"),
		PremiumMinFeatures: 1,
		PremiumMinModels:   2,
		MaxResults:         4,
	}
}

// Recommend classifies calculations of an analysed comparison. Rules run in a
// fixed order and a model receives at most one recommendation. The result is
// never longer than opts.MaxResults and is empty only when calcs is empty.
func Recommend(analysis ComparisonAnalysis, calcs []CostCalculation, opts RecommendOptions) []Recommendation {
	if len(calcs) == 0 {
		return []Recommendation{}
	}

	picked := make(map[string]bool)
	recs := make([]Recommendation, 0, 5)
	add := func(r Recommendation) {
		picked[r.Calculation.Model.ID] = true
		recs = append(recs, r)
	}

	// Best value
	best := analysis.Cheapest
	savings := analysis.MaxCost.Sub(analysis.MinCost)
	add(Recommendation{
		Category:               CategoryBestValue,
		Reason:                 bestValueReason(best, savings),
		Calculation:            best,
		SavingsVsMostExpensive: &savings,
	})

	// Most efficient
	if i := mostEfficient(analysis.EfficiencyScores); i >= 0 && i < len(calcs) && !picked[calcs[i].Model.ID] {
		score := analysis.EfficiencyScores[i]
		add(Recommendation{
			Category:    CategoryMostEfficient,
			Reason:      fmt.Sprintf("Lowest cost per million tokens (%s)", score.CostPerMillionTokens.StringFixed(4)),
			Calculation: calcs[i],
		})
	}

	// High performance
	if i := largestContext(calcs); !picked[calcs[i].Model.ID] {
		add(Recommendation{
			Category:    CategoryHighPerformance,
			Reason:      fmt.Sprintf("Largest context window (%d tokens)", calcs[i].Model.ContextWindow),
			Calculation: calcs[i],
		})
	}

	// Premium
	top := analysis.MostExpensive
	if !picked[top.Model.ID] && len(calcs) > opts.PremiumMinModels && top.Model.HasFeatures(max(opts.PremiumMinFeatures, 1)) {
		add(Recommendation{
			Category:    CategoryPremium,
			Reason:      fmt.Sprintf("Most capable option with %d features", len(top.Model.Features)),
			Calculation: top,
		})
	}

	// Budget friendly: the first affordable featured model other than the
	// best value. It is dropped, not replaced, when already recommended.
	threshold := analysis.MinCost.Mul(opts.BudgetMultiplier)
	for _, c := range calcs {
		if c.Model.ID == best.Model.ID {
			continue
		}
		if c.TotalCost.LessThanOrEqual(threshold) && c.Model.HasFeatures(1) {
			if !picked[c.Model.ID] {
				add(Recommendation{
					Category:    CategoryBudgetFriendly,
					Reason:      fmt.Sprintf("Within %sx of the cheapest option with %d features", opts.BudgetMultiplier.String(), len(c.Model.Features)),
					Calculation: c,
				})
			}
			break
		}
	}

	if opts.MaxResults > 0 && len(recs) > opts.MaxResults {
		recs = recs[:opts.MaxResults]
	}
	return recs
}

func bestValueReason(c CostCalculation, savings decimal.Decimal) string {
	if savings.IsZero() {
		return fmt.Sprintf("Lowest total cost (%s %s)", c.TotalCost.StringFixed(4), currency(c.Model))
	}
	return fmt.Sprintf("Lowest total cost, saves %s %s over the most expensive option",
		savings.StringFixed(4), currency(c.Model))
}

func currency(m ModelCatalogEntry) string {
	if m.Currency == "" {
		return "USD"
	}
	return m.Currency
}

// mostEfficient returns the index of the lowest cost per token, first on ties.
func mostEfficient(scores []EfficiencyScore) int {
	best := -1
	for i, s := range scores {
		if best < 0 || s.CostPerToken.LessThan(scores[best].CostPerToken) {
			best = i
		}
	}
	return best
}

// largestContext returns the index of the widest context window, first on ties.
func largestContext(calcs []CostCalculation) int {
	best := 0
	for i, c := range calcs {
		if c.Model.ContextWindow > calcs[best].Model.ContextWindow {
			best = i
		}
	}
	return best
}
