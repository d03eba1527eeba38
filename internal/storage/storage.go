// Package storage provides the storage interface and implementations.
package storage

import (
	"github.com/mandalnilabja/tokencost/internal/storage/models"
	"github.com/mandalnilabja/tokencost/internal/storage/sqlite"
)

// Re-export types from models package for convenience
type (
	CustomModel       = models.CustomModel
	ModelFilter       = models.ModelFilter
	SavedComparison   = models.SavedComparison
	ComparisonSummary = models.ComparisonSummary
	ComparisonFilter  = models.ComparisonFilter
)

// Re-export errors from sqlite package
var (
	ErrNotFound      = sqlite.ErrNotFound
	ErrDuplicateKey  = sqlite.ErrDuplicateKey
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// Storage defines the interface for persistent data storage
type Storage interface {
	// Custom model operations
	CreateModel(model *models.CustomModel) error
	GetModel(id string) (*models.CustomModel, error)
	ListModels(filter models.ModelFilter) ([]*models.CustomModel, error)
	UpdateModel(model *models.CustomModel) error
	DeleteModel(id string) error

	// Comparison history operations
	SaveComparison(cmp *models.SavedComparison) error
	GetComparison(id string) (*models.SavedComparison, error)
	ListComparisons(filter models.ComparisonFilter) ([]*models.ComparisonSummary, error)
	DeleteComparison(id string) error
	DeleteComparisonsBefore(date string) (int64, error)

	// Maintenance operations
	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
// This is the main factory function for creating storage
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}
