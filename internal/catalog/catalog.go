// Package catalog serves model catalog entries by merging the built-in
// defaults with custom entries kept in storage.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/storage"
)

// Catalog errors.
var (
	ErrUnknownModel   = errors.New("unknown model")
	ErrReadOnlyModel  = errors.New("built-in models are read-only")
	ErrDuplicateModel = errors.New("model id already exists")
)

// ModelStore is the subset of storage.Storage the catalog needs.
type ModelStore interface {
	CreateModel(model *storage.CustomModel) error
	GetModel(id string) (*storage.CustomModel, error)
	ListModels(filter storage.ModelFilter) ([]*storage.CustomModel, error)
	UpdateModel(model *storage.CustomModel) error
	DeleteModel(id string) error
}

// Entry is a catalog entry annotated with its origin.
type Entry struct {
	pricing.ModelCatalogEntry
	Custom bool `json:"custom"`
}

// DefaultCacheTTL bounds how long a custom entry is served from the cache.
// A lookup racing an update can re-cache the old row; the TTL caps that.
const DefaultCacheTTL = 5 * time.Minute

// Cache holds resolved entries keyed by model id.
type Cache = ristretto.Cache[string, pricing.ModelCatalogEntry]

// NewCache creates the lookup cache used by Service.
func NewCache(maxCost int64) (*Cache, error) {
	return ristretto.NewCache(&ristretto.Config[string, pricing.ModelCatalogEntry]{
		NumCounters:        maxCost * 10,
		MaxCost:            maxCost, // one unit per entry
		BufferItems:        64,
		IgnoreInternalCost: true,
		Metrics:            true,
	})
}

// Service resolves and manages catalog entries.
type Service struct {
	store    ModelStore
	cache    *Cache
	logger   *slog.Logger
	defaults []pricing.ModelCatalogEntry
	byID     map[string]int
	currency string
	cacheTTL time.Duration
}

// New creates a catalog service. cache may be nil to disable caching.
func New(store ModelStore, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := Defaults()
	byID := make(map[string]int, len(defaults))
	for i, d := range defaults {
		byID[d.ID] = i
	}
	return &Service{
		store:    store,
		cache:    cache,
		logger:   logger,
		defaults: defaults,
		byID:     byID,
		currency: "USD",
		cacheTTL: DefaultCacheTTL,
	}
}

// SetDefaultCurrency sets the currency given to custom entries created
// without one.
func (s *Service) SetDefaultCurrency(currency string) {
	if currency != "" {
		s.currency = strings.ToUpper(currency)
	}
}

// List returns the built-in entries followed by custom entries. An empty
// provider lists every provider.
func (s *Service) List(provider string) ([]Entry, error) {
	var entries []Entry
	for _, d := range s.defaults {
		if provider == "" || strings.EqualFold(d.Provider, provider) {
			entries = append(entries, Entry{ModelCatalogEntry: d})
		}
	}

	custom, err := s.store.ListModels(storage.ModelFilter{Provider: provider})
	if err != nil {
		return nil, fmt.Errorf("list custom models: %w", err)
	}
	for _, c := range custom {
		entries = append(entries, Entry{ModelCatalogEntry: c.ModelCatalogEntry, Custom: true})
	}

	return entries, nil
}

// Get resolves a single entry by id.
func (s *Service) Get(id string) (pricing.ModelCatalogEntry, error) {
	if i, ok := s.byID[id]; ok {
		return s.defaults[i], nil
	}

	if s.cache != nil {
		if entry, ok := s.cache.Get(id); ok {
			return entry, nil
		}
	}

	custom, err := s.store.GetModel(id)
	if errors.Is(err, storage.ErrNotFound) {
		return pricing.ModelCatalogEntry{}, fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}
	if err != nil {
		return pricing.ModelCatalogEntry{}, fmt.Errorf("get model %s: %w", id, err)
	}

	if s.cache != nil {
		s.cache.SetWithTTL(id, custom.ModelCatalogEntry, 1, s.cacheTTL)
	}
	return custom.ModelCatalogEntry, nil
}

// Resolve looks up several ids, preserving order. It fails on the first
// unknown id.
func (s *Service) Resolve(ids []string) ([]pricing.ModelCatalogEntry, error) {
	out := make([]pricing.ModelCatalogEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Create validates and stores a custom entry. An empty id is generated.
func (s *Service) Create(entry pricing.ModelCatalogEntry) (*storage.CustomModel, error) {
	if entry.ID != "" && IsDefault(entry.ID) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, entry.ID)
	}

	// The store assigns an id when none is given.
	if err := entry.ValidateFields(); err != nil {
		return nil, err
	}

	if entry.Currency == "" {
		entry.Currency = s.currency
	}

	model := &storage.CustomModel{ModelCatalogEntry: entry}
	if err := s.store.CreateModel(model); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, entry.ID)
		}
		return nil, fmt.Errorf("create model: %w", err)
	}

	s.logger.Info("custom model created", "id", model.ID, "provider", model.Provider)
	return model, nil
}

// Update replaces a custom entry.
func (s *Service) Update(entry pricing.ModelCatalogEntry) (*storage.CustomModel, error) {
	if IsDefault(entry.ID) {
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyModel, entry.ID)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if entry.Currency == "" {
		entry.Currency = s.currency
	}

	model := &storage.CustomModel{ModelCatalogEntry: entry}
	if err := s.store.UpdateModel(model); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModel, entry.ID)
		}
		return nil, fmt.Errorf("update model: %w", err)
	}
	s.invalidate(entry.ID)

	s.logger.Info("custom model updated", "id", entry.ID)

	// Re-read so the caller sees the stored creation time.
	if stored, err := s.store.GetModel(entry.ID); err == nil {
		return stored, nil
	}
	return model, nil
}

// Delete removes a custom entry.
func (s *Service) Delete(id string) error {
	if IsDefault(id) {
		return fmt.Errorf("%w: %s", ErrReadOnlyModel, id)
	}

	if err := s.store.DeleteModel(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownModel, id)
		}
		return fmt.Errorf("delete model: %w", err)
	}
	s.invalidate(id)

	s.logger.Info("custom model deleted", "id", id)
	return nil
}

func (s *Service) invalidate(id string) {
	if s.cache != nil {
		s.cache.Del(id)
	}
}
