package quote

import (
	"net/http"

	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/shared"
)

// Calculate handles POST /api/calculate.
func (h *Handlers) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
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

	shared.WriteJSON(w, pricing.Calculate(model, req.InputTokens, req.OutputTokens), http.StatusOK)
}
