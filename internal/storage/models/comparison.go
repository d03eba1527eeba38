package models

import (
	"time"

	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/shopspring/decimal"
)

// SavedComparison is a comparison set stored in history together with the
// analysis and recommendations computed for it.
type SavedComparison struct {
	ID              string                      `json:"id"`
	Name            string                      `json:"name"`
	ModelIDs        []string                    `json:"model_ids"`
	MinCost         decimal.Decimal             `json:"min_cost"`
	MaxCost         decimal.Decimal             `json:"max_cost"`
	Calculations    []pricing.CostCalculation   `json:"calculations"`
	Analysis        *pricing.ComparisonAnalysis `json:"analysis,omitempty"`
	Recommendations []pricing.Recommendation    `json:"recommendations,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// ComparisonSummary is the listing view of a saved comparison.
type ComparisonSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	ModelIDs   []string        `json:"model_ids"`
	ModelCount int             `json:"model_count"`
	MinCost    decimal.Decimal `json:"min_cost"`
	MaxCost    decimal.Decimal `json:"max_cost"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Summary converts a SavedComparison to its listing view
func (c *SavedComparison) Summary() *ComparisonSummary {
	return &ComparisonSummary{
		ID:         c.ID,
		Name:       c.Name,
		ModelIDs:   c.ModelIDs,
		ModelCount: len(c.ModelIDs),
		MinCost:    c.MinCost,
		MaxCost:    c.MaxCost,
		CreatedAt:  c.CreatedAt,
	}
}

// ComparisonFilter contains parameters for filtering saved comparisons
type ComparisonFilter struct {
	ModelID   string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
