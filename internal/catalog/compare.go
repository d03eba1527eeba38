package catalog

import "github.com/mandalnilabja/tokencost/internal/pricing"

// QuoteItem prices one model for a given token usage.
type QuoteItem struct {
	ModelID      string `json:"model_id"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// Quote is a priced comparison with its analysis and recommendations.
type Quote struct {
	Calculations    []pricing.CostCalculation  `json:"calculations"`
	Analysis        pricing.ComparisonAnalysis `json:"analysis"`
	Recommendations []pricing.Recommendation   `json:"recommendations"`
}

// Compare resolves and prices every item. A model listed twice keeps its
// first position and its last usage. No items yields pricing.ErrNoData.
func (s *Service) Compare(items []QuoteItem, opts pricing.RecommendOptions) (*Quote, error) {
	set := pricing.NewComparisonSet()
	for _, item := range items {
		model, err := s.Get(item.ModelID)
		if err != nil {
			return nil, err
		}
		set.Add(pricing.Calculate(model, item.InputTokens, item.OutputTokens))
	}

	calcs := set.Calculations()
	analysis, err := pricing.Analyze(calcs)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Calculations:    calcs,
		Analysis:        analysis,
		Recommendations: pricing.Recommend(analysis, calcs, opts),
	}, nil
}
