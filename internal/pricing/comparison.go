package pricing

import (
	"slices"

	"github.com/shopspring/decimal"
)

// ComparisonSet is an ordered collection of calculations holding at most one
// entry per model id. It is owned by the caller; the engine only reads the
// slice returned by Calculations.
type ComparisonSet struct {
	items []CostCalculation
}

// NewComparisonSet builds a set from calculations, collapsing duplicate model
// ids so that the last calculation for a model wins at the first position.
func NewComparisonSet(calcs ...CostCalculation) *ComparisonSet {
	s := &ComparisonSet{}
	for _, c := range calcs {
		s.Add(c)
	}
	return s
}

// Add inserts a calculation, replacing any existing one for the same model.
func (s *ComparisonSet) Add(c CostCalculation) {
	if i := s.index(c.Model.ID); i >= 0 {
		s.items[i] = c
		return
	}
	s.items = append(s.items, c)
}

// Remove drops the calculation for a model id. It reports whether one existed.
func (s *ComparisonSet) Remove(modelID string) bool {
	i := s.index(modelID)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Clear empties the set.
func (s *ComparisonSet) Clear() {
	s.items = nil
}

// Len returns the number of calculations in the set.
func (s *ComparisonSet) Len() int {
	return len(s.items)
}

// Calculations returns a copy of the calculations in insertion order.
func (s *ComparisonSet) Calculations() []CostCalculation {
	return slices.Clone(s.items)
}

func (s *ComparisonSet) index(modelID string) int {
	return slices.IndexFunc(s.items, func(c CostCalculation) bool {
		return c.Model.ID == modelID
	})
}

// ComparisonAnalysis summarises a set of calculations.
type ComparisonAnalysis struct {
	Count                  int               `json:"count"`
	MinCost                decimal.Decimal   `json:"min_cost"`
	MaxCost                decimal.Decimal   `json:"max_cost"`
	AvgCost                decimal.Decimal   `json:"avg_cost"`
	MedianCost             decimal.Decimal   `json:"median_cost"`
	CostVariance           decimal.Decimal   `json:"cost_variance"`
	CostVariancePercentage decimal.Decimal   `json:"cost_variance_percentage"`
	Cheapest               CostCalculation   `json:"cheapest"`
	MostExpensive          CostCalculation   `json:"most_expensive"`
	EfficiencyScores       []EfficiencyScore `json:"efficiency_scores"`
}

var hundred = decimal.NewFromInt(100)

// Analyze ranks calculations by total cost. It returns ErrNoData when calcs
// is empty. Ties for cheapest and most expensive go to the earliest entry.
func Analyze(calcs []CostCalculation) (ComparisonAnalysis, error) {
	if len(calcs) == 0 {
		return ComparisonAnalysis{}, ErrNoData
	}

	cheapest, priciest := 0, 0
	sum := decimal.Zero
	for i, c := range calcs {
		sum = sum.Add(c.TotalCost)
		if c.TotalCost.LessThan(calcs[cheapest].TotalCost) {
			cheapest = i
		}
		if c.TotalCost.GreaterThan(calcs[priciest].TotalCost) {
			priciest = i
		}
	}

	minCost := calcs[cheapest].TotalCost
	maxCost := calcs[priciest].TotalCost
	variance := maxCost.Sub(minCost)

	variancePct := decimal.Zero
	if minCost.IsPositive() {
		variancePct = variance.Div(minCost).Mul(hundred)
	}

	return ComparisonAnalysis{
		Count:                  len(calcs),
		MinCost:                minCost,
		MaxCost:                maxCost,
		AvgCost:                sum.Div(decimal.NewFromInt(int64(len(calcs)))),
		MedianCost:             median(calcs),
		CostVariance:           variance,
		CostVariancePercentage: variancePct,
		Cheapest:               calcs[cheapest],
		MostExpensive:          calcs[priciest],
		EfficiencyScores:       efficiencyScores(calcs),
	}, nil
}

// median returns the element at index n/2 of the cost-sorted sequence, which
// is the upper of the two middle values for even n.
func median(calcs []CostCalculation) decimal.Decimal {
	costs := make([]decimal.Decimal, len(calcs))
	for i, c := range calcs {
		costs[i] = c.TotalCost
	}
	slices.SortStableFunc(costs, func(a, b decimal.Decimal) int {
		return a.Cmp(b)
	})
	return costs[len(costs)/2]
}

func efficiencyScores(calcs []CostCalculation) []EfficiencyScore {
	scores := make([]EfficiencyScore, len(calcs))
	for i, c := range calcs {
		scores[i] = Efficiency(c)
	}
	return scores
}

// Efficiency computes the ratios for one calculation. Ratios whose
// denominator is zero are reported as zero.
func Efficiency(c CostCalculation) EfficiencyScore {
	score := EfficiencyScore{
		ModelID:              c.Model.ID,
		CostPerToken:         decimal.Zero,
		CostPerMillionTokens: decimal.Zero,
		ContextValueRatio:    decimal.Zero,
	}

	if n := c.TotalTokens(); n.IsPositive() {
		score.CostPerToken = c.TotalCost.Div(n)
		score.CostPerMillionTokens = c.TotalCost.Mul(decimal.NewFromInt(tokensPerPriceUnit)).Div(n)
	}
	if c.TotalCost.IsPositive() {
		score.ContextValueRatio = decimal.NewFromInt(int64(c.Model.ContextWindow)).Div(c.TotalCost)
	}
	return score
}
