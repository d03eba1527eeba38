package infra

import (
	"time"

	"github.com/mandalnilabja/tokencost/internal/catalog"
)

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Catalog   *catalog.Service
	Cache     *catalog.Cache
	StartTime time.Time
}

// New creates a new instance of infrastructure handlers.
func New(cat *catalog.Service, cache *catalog.Cache, startTime time.Time) *Handlers {
	return &Handlers{
		Catalog:   cat,
		Cache:     cache,
		StartTime: startTime,
	}
}
