package quote

import (
	"errors"
	"net/http"

	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/tokenizer"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/shared"
)

// EstimateTokens handles POST /api/tokens/estimate.
func (h *Handlers) EstimateTokens(w http.ResponseWriter, r *http.Request) {
	var req tokenizer.EstimateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	est, err := h.Tokenizer.Estimate(req)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	resp := EstimateResponse{Estimate: est}
	if req.Model != "" {
		model, err := h.Catalog.Get(req.Model)
		switch {
		case err == nil:
			calc := pricing.Calculate(model, est.InputTokens+est.HistoryTokens, est.OutputTokens)
			resp.Cost = &calc
		case !errors.Is(err, catalog.ErrUnknownModel):
			shared.WriteError(w, h.Logger, err)
			return
		}
	}

	shared.WriteJSON(w, resp, http.StatusOK)
}
