package pricing

import "github.com/shopspring/decimal"

// Calendar approximations used for projections.
const (
	DaysPerMonth = 30
	DaysPerYear  = 365
)

var (
	daysPerMonth = decimal.NewFromInt(DaysPerMonth)
	daysPerYear  = decimal.NewFromInt(DaysPerYear)
)

// Project estimates the daily, monthly and yearly cost of running usage on
// model. A nil model yields the zero breakdown. Negative usage values are
// clamped to zero.
func Project(model *ModelCatalogEntry, usage UsageProfile, includeHistory bool) CostBreakdown {
	if model == nil {
		return zeroBreakdown()
	}

	// Token arithmetic stays in decimal so large profiles cannot wrap.
	queries := tokenCount(usage.QueriesPerDay)
	inputPerQuery := tokenCount(usage.InputTokensPerQuery)
	outputPerQuery := tokenCount(usage.OutputTokensPerQuery)
	if includeHistory {
		inputPerQuery = inputPerQuery.Add(tokenCount(usage.ConversationHistoryTokensPerQuery))
	}

	inputTokens := inputPerQuery.Mul(queries)
	outputTokens := outputPerQuery.Mul(queries)

	inputCost := costFor(inputTokens, model.InputPricePerMillion)
	outputCost := costFor(outputTokens, model.OutputPricePerMillion)
	daily := inputCost.Add(outputCost)

	b := CostBreakdown{
		TotalInputTokensPerDay:  inputTokens,
		TotalOutputTokensPerDay: outputTokens,
		InputCostPerDay:         inputCost,
		OutputCostPerDay:        outputCost,
		DailyCost:               daily,
		MonthlyCost:             daily.Mul(daysPerMonth),
		YearlyCost:              daily.Mul(daysPerYear),
		ContextUtilization:      decimal.Zero,
	}

	if model.ContextWindow > 0 {
		perQuery := inputPerQuery.Add(outputPerQuery)
		window := decimal.NewFromInt(int64(model.ContextWindow))
		b.ContextUtilization = perQuery.Div(window).Mul(hundred)
		b.ExceedsContextWindow = perQuery.GreaterThan(window)
	}
	return b
}

func tokenCount(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(clamp(n)))
}

func zeroBreakdown() CostBreakdown {
	return CostBreakdown{
		TotalInputTokensPerDay:  decimal.Zero,
		TotalOutputTokensPerDay: decimal.Zero,
		InputCostPerDay:         decimal.Zero,
		OutputCostPerDay:        decimal.Zero,
		DailyCost:               decimal.Zero,
		MonthlyCost:             decimal.Zero,
		YearlyCost:              decimal.Zero,
		ContextUtilization:      decimal.Zero,
	}
}

// HistoryImpact is the additional cost of carrying conversation history.
// Positive values mean history makes usage more expensive.
type HistoryImpact struct {
	Daily   decimal.Decimal `json:"daily"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

// HistoryComparison holds both projection scenarios and their difference.
type HistoryComparison struct {
	WithHistory    CostBreakdown `json:"with_history"`
	WithoutHistory CostBreakdown `json:"without_history"`
	Impact         HistoryImpact `json:"impact"`
}

// CompareHistory projects usage with and without conversation history.
func CompareHistory(model *ModelCatalogEntry, usage UsageProfile) HistoryComparison {
	with := Project(model, usage, true)
	without := Project(model, usage, false)
	return HistoryComparison{
		WithHistory:    with,
		WithoutHistory: without,
		Impact: HistoryImpact{
			Daily:   with.DailyCost.Sub(without.DailyCost),
			Monthly: with.MonthlyCost.Sub(without.MonthlyCost),
			Yearly:  with.YearlyCost.Sub(without.YearlyCost),
		},
	}
}
