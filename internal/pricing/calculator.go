package pricing

import "github.com/shopspring/decimal"

// Calculate prices a token usage against a catalog entry.
// Negative token counts are clamped to zero. No rounding is applied.
func Calculate(model ModelCatalogEntry, inputTokens, outputTokens int) CostCalculation {
	inputTokens = clamp(inputTokens)
	outputTokens = clamp(outputTokens)

	inputCost := costFor(decimal.NewFromInt(int64(inputTokens)), model.InputPricePerMillion)
	outputCost := costFor(decimal.NewFromInt(int64(outputTokens)), model.OutputPricePerMillion)

	return CostCalculation{
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		InputCost:    inputCost,
		OutputCost:   outputCost,
		TotalCost:    inputCost.Add(outputCost),
	}
}

// costFor converts a token count to a cost given a price per million tokens.
// Shifting by six decimal places keeps the division exact.
func costFor(tokens decimal.Decimal, pricePerMillion decimal.Decimal) decimal.Decimal {
	if tokens.IsZero() {
		return decimal.Zero
	}
	return tokens.Shift(-6).Mul(pricePerMillion)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
