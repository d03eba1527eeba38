// Package pricing implements the cost calculation, comparison, recommendation
// and usage projection engine. Every function in this package is pure: it reads
// only its arguments and never mutates them.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// tokensPerPriceUnit is the token count that prices are quoted against.
const tokensPerPriceUnit = 1_000_000

// ModelCatalogEntry describes one billable LLM offering.
type ModelCatalogEntry struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Provider              string          `json:"provider"`
	InputPricePerMillion  decimal.Decimal `json:"input_price_per_million"`
	OutputPricePerMillion decimal.Decimal `json:"output_price_per_million"`
	ContextWindow         int             `json:"context_window"`
	Currency              string          `json:"currency"` // informational only
	Features              []string        `json:"features"`
	IsMultiModal          bool            `json:"is_multimodal"`
	IsVisionEnabled       bool            `json:"is_vision_enabled"`
	IsAudioEnabled        bool            `json:"is_audio_enabled"`
}

// Validate reports whether the entry can be fed to the engine.
func (m *ModelCatalogEntry) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidModel)
	}
	return m.ValidateFields()
}

// ValidateFields checks everything Validate does except the id, for entries
// whose id is assigned later.
func (m *ModelCatalogEntry) ValidateFields() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidModel)
	case m.InputPricePerMillion.IsNegative():
		return fmt.Errorf("%w: input price must not be negative", ErrInvalidModel)
	case m.OutputPricePerMillion.IsNegative():
		return fmt.Errorf("%w: output price must not be negative", ErrInvalidModel)
	case m.ContextWindow <= 0:
		return fmt.Errorf("%w: context window must be positive", ErrInvalidModel)
	}
	return nil
}

// HasFeatures reports whether the entry carries at least n capability tags.
func (m *ModelCatalogEntry) HasFeatures(n int) bool {
	return len(m.Features) >= n
}

// CostCalculation is the result of applying a token usage to one catalog entry.
type CostCalculation struct {
	Model        ModelCatalogEntry `json:"model"`
	InputTokens  int               `json:"input_tokens"`
	OutputTokens int               `json:"output_tokens"`
	InputCost    decimal.Decimal   `json:"input_cost"`
	OutputCost   decimal.Decimal   `json:"output_cost"`
	TotalCost    decimal.Decimal   `json:"total_cost"`
}

// TotalTokens returns input plus output tokens. The sum is exact for any
// pair of token counts.
func (c CostCalculation) TotalTokens() decimal.Decimal {
	return decimal.NewFromInt(int64(c.InputTokens)).Add(decimal.NewFromInt(int64(c.OutputTokens)))
}

// EfficiencyScore holds the per-calculation ratios used for ranking.
type EfficiencyScore struct {
	ModelID              string          `json:"model_id"`
	CostPerToken         decimal.Decimal `json:"cost_per_token"`
	CostPerMillionTokens decimal.Decimal `json:"cost_per_million_tokens"`
	ContextValueRatio    decimal.Decimal `json:"context_value_ratio"`
}

// Category classifies a recommendation.
type Category string

const (
	CategoryBestValue       Category = "best-value"
	CategoryMostEfficient   Category = "most-efficient"
	CategoryHighPerformance Category = "high-performance"
	CategoryPremium         Category = "premium"
	CategoryBudgetFriendly  Category = "budget-friendly"
)

// Recommendation tags one calculation of a comparison with a category.
type Recommendation struct {
	Category               Category         `json:"category"`
	Reason                 string           `json:"reason"`
	Calculation            CostCalculation  `json:"calculation"`
	SavingsVsMostExpensive *decimal.Decimal `json:"savings_vs_most_expensive,omitempty"`
}

// UsageProfile describes a daily operating load.
type UsageProfile struct {
	QueriesPerDay                     int `json:"queries_per_day"`
	InputTokensPerQuery               int `json:"input_tokens_per_query"`
	OutputTokensPerQuery              int `json:"output_tokens_per_query"`
	ConversationHistoryTokensPerQuery int `json:"conversation_history_tokens_per_query"`
}

// CostBreakdown is the projection of a usage profile onto one model.
type CostBreakdown struct {
	TotalInputTokensPerDay  decimal.Decimal `json:"total_input_tokens_per_day"`
	TotalOutputTokensPerDay decimal.Decimal `json:"total_output_tokens_per_day"`
	InputCostPerDay         decimal.Decimal `json:"input_cost_per_day"`
	OutputCostPerDay        decimal.Decimal `json:"output_cost_per_day"`
	DailyCost               decimal.Decimal `json:"daily_cost"`
	MonthlyCost             decimal.Decimal `json:"monthly_cost"`
	YearlyCost              decimal.Decimal `json:"yearly_cost"`

	// ContextUtilization is the percentage of the context window a single
	// query occupies (input, history and output together).
	ContextUtilization   decimal.Decimal `json:"context_utilization"`
	ExceedsContextWindow bool            `json:"exceeds_context_window"`
}
