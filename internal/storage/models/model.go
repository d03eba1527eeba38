package models

import (
	"time"

	"github.com/mandalnilabja/tokencost/internal/pricing"
)

// CustomModel is a user-submitted catalog entry persisted in storage.
type CustomModel struct {
	pricing.ModelCatalogEntry
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ModelFilter contains parameters for filtering custom models
type ModelFilter struct {
	Provider string
}
