// Package history serves saved comparisons.
package history

import (
	"log/slog"

	"github.com/mandalnilabja/tokencost/internal/storage"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/quote"
)

// Comparer runs a comparison request against the catalog.
type Comparer interface {
	RunComparison(req quote.CompareRequest) (*quote.ComparisonResult, error)
}

// Handlers holds the dependencies for history HTTP handlers.
type Handlers struct {
	Storage  storage.Storage
	Comparer Comparer
	Logger   *slog.Logger
}

// New creates a new instance of history handlers.
func New(store storage.Storage, comparer Comparer, logger *slog.Logger) *Handlers {
	return &Handlers{
		Storage:  store,
		Comparer: comparer,
		Logger:   logger,
	}
}

// SaveRequest is the body for POST /api/history.
type SaveRequest struct {
	Name string `json:"name"`
	quote.CompareRequest
}
