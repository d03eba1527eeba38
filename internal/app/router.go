package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/tokencost/internal/transport/http/handler"
	"github.com/mandalnilabja/tokencost/internal/transport/http/middleware"
	"github.com/mandalnilabja/tokencost/internal/transport/http/middleware/ratelimit"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger  *slog.Logger
	Limiter *ratelimit.Limiter // nil disables rate limiting
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)

	// Model catalog
	mux.HandleFunc("GET /api/models", repo.Models.ListModels)
	mux.HandleFunc("POST /api/models", repo.Models.CreateModel)
	mux.HandleFunc("GET /api/models/{id}", repo.Models.GetModel)
	mux.HandleFunc("PUT /api/models/{id}", repo.Models.UpdateModel)
	mux.HandleFunc("DELETE /api/models/{id}", repo.Models.DeleteModel)

	// Pricing
	mux.HandleFunc("POST /api/calculate", repo.Quote.Calculate)
	mux.HandleFunc("POST /api/compare", repo.Quote.Compare)
	mux.HandleFunc("POST /api/project", repo.Quote.Project)
	mux.HandleFunc("POST /api/tokens/estimate", repo.Quote.EstimateTokens)

	// Comparison history
	mux.HandleFunc("GET /api/history", repo.History.ListComparisons)
	mux.HandleFunc("POST /api/history", repo.History.SaveComparison)
	mux.HandleFunc("DELETE /api/history", repo.History.DeleteComparisonsBefore)
	mux.HandleFunc("GET /api/history/{id}", repo.History.GetComparison)
	mux.HandleFunc("DELETE /api/history/{id}", repo.History.DeleteComparison)

	mux.HandleFunc("GET /", repo.Infra.RootStatus)

	// Apply middleware chain (order: inner to outer)
	var h http.Handler = mux

	if opts.Limiter != nil {
		h = ratelimit.Middleware(opts.Limiter)(h)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recover(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.CORS(h)

	return h
}
