package pricing

import "errors"

// Errors returned by the pricing engine and its callers.
var (
	ErrInvalidUsage = errors.New("invalid usage")
	ErrInvalidModel = errors.New("invalid model")
	ErrNoData       = errors.New("no calculations to analyze")
)
