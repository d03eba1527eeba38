// Package quote serves the pricing operations: single calculations,
// comparisons with recommendations, usage projections and token estimates.
package quote

import (
	"log/slog"

	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/tokenizer"
)

// Handlers holds the dependencies for pricing HTTP handlers.
type Handlers struct {
	Catalog   *catalog.Service
	Tokenizer tokenizer.Tokenizer
	Options   pricing.RecommendOptions
	Logger    *slog.Logger
}

// New creates a new instance of pricing handlers.
func New(cat *catalog.Service, tok tokenizer.Tokenizer, opts pricing.RecommendOptions, logger *slog.Logger) *Handlers {
	return &Handlers{
		Catalog:   cat,
		Tokenizer: tok,
		Options:   opts,
		Logger:    logger,
	}
}
