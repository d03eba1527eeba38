// Package models serves the model catalog: built-in entries plus custom
// entries managed over the API.
package models

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/shared"
)

// Handlers holds the dependencies for catalog HTTP handlers.
type Handlers struct {
	Catalog *catalog.Service
	Logger  *slog.Logger
}

// New creates a new instance of catalog handlers.
func New(cat *catalog.Service, logger *slog.Logger) *Handlers {
	return &Handlers{Catalog: cat, Logger: logger}
}

// ListModels handles GET /api/models.
func (h *Handlers) ListModels(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Catalog.List(r.URL.Query().Get("provider"))
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}

	shared.WriteJSON(w, map[string]any{
		"models": entries,
		"count":  len(entries),
	}, http.StatusOK)
}

// GetModel handles GET /api/models/{id}.
func (h *Handlers) GetModel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	model, err := h.Catalog.Get(id)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	shared.WriteJSON(w, catalog.Entry{ModelCatalogEntry: model, Custom: !catalog.IsDefault(id)}, http.StatusOK)
}

// CreateModel handles POST /api/models.
func (h *Handlers) CreateModel(w http.ResponseWriter, r *http.Request) {
	var entry pricing.ModelCatalogEntry
	if err := shared.DecodeJSON(w, r, &entry); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	created, err := h.Catalog.Create(entry)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	shared.WriteJSON(w, created, http.StatusCreated)
}

// UpdateModel handles PUT /api/models/{id}. The path id wins over any id in
// the body.
func (h *Handlers) UpdateModel(w http.ResponseWriter, r *http.Request) {
	var entry pricing.ModelCatalogEntry
	if err := shared.DecodeJSON(w, r, &entry); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}
	entry.ID = r.PathValue("id")

	updated, err := h.Catalog.Update(entry)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	shared.WriteJSON(w, updated, http.StatusOK)
}

// DeleteModel handles DELETE /api/models/{id}.
func (h *Handlers) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.PathValue("id")); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
