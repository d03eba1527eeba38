package quote

import (
	"net/http"

	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/shared"
)

// Project handles POST /api/project.
func (h *Handlers) Project(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}
	if req.ModelID == "" {
		shared.WriteJSONError(w, "model_id is required", http.StatusBadRequest)
		return
	}

	model, err := h.Catalog.Get(req.ModelID)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	shared.WriteJSON(w, ProjectResponse{
		Model:             model,
		Usage:             req.Usage,
		HistoryComparison: pricing.CompareHistory(&model, req.Usage),
	}, http.StatusOK)
}
