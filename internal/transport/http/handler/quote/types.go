package quote

import (
	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/tokenizer"
)

// CalculateRequest is the body for POST /api/calculate.
type CalculateRequest struct {
	ModelID      string `json:"model_id"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// CompareItem prices one model with its own token counts.
type CompareItem = catalog.QuoteItem

// CompareRequest is the body for POST /api/compare. ModelIDs share the
// top-level token counts; Items carry their own and are applied after them.
type CompareRequest struct {
	ModelIDs     []string      `json:"model_ids,omitempty"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
	Items        []CompareItem `json:"items,omitempty"`
}

// ComparisonResult is the response for POST /api/compare.
type ComparisonResult = catalog.Quote

// ProjectRequest is the body for POST /api/project.
type ProjectRequest struct {
	ModelID string               `json:"model_id"`
	Usage   pricing.UsageProfile `json:"usage"`
}

// ProjectResponse is the response for POST /api/project.
type ProjectResponse struct {
	Model pricing.ModelCatalogEntry `json:"model"`
	Usage pricing.UsageProfile      `json:"usage"`
	pricing.HistoryComparison
}

// EstimateResponse is the response for POST /api/tokens/estimate. Cost is
// set when the sample's model is in the catalog.
type EstimateResponse struct {
	*tokenizer.Estimate
	Cost *pricing.CostCalculation `json:"cost,omitempty"`
}
