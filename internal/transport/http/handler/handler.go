// Package handler composes the HTTP handler groups.
package handler

import (
	"log/slog"
	"time"

	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/storage"
	"github.com/mandalnilabja/tokencost/internal/tokenizer"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/history"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/models"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/quote"
)

// Deps are the services the handlers are built from.
type Deps struct {
	Storage   storage.Storage
	Catalog   *catalog.Service
	Cache     *catalog.Cache
	Tokenizer tokenizer.Tokenizer
	Options   pricing.RecommendOptions
	Logger    *slog.Logger
}

// Repo composes all domain-specific handlers.
type Repo struct {
	Models  *models.Handlers
	Quote   *quote.Handlers
	History *history.Handlers
	Infra   *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(d Deps) *Repo {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	q := quote.New(d.Catalog, d.Tokenizer, d.Options, logger)
	return &Repo{
		Models:  models.New(d.Catalog, logger),
		Quote:   q,
		History: history.New(d.Storage, q, logger),
		Infra:   infra.New(d.Catalog, d.Cache, time.Now()),
	}
}
