package quote

import (
	"net/http"

	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/shared"
)

// Compare handles POST /api/compare.
func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	result, err := h.RunComparison(req)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	shared.WriteJSON(w, result, http.StatusOK)
}

// RunComparison prices every requested model, collapsing repeated model ids
// so the last request for a model wins, then analyzes the set.
func (h *Handlers) RunComparison(req CompareRequest) (*ComparisonResult, error) {
	items := make([]CompareItem, 0, len(req.ModelIDs)+len(req.Items))
	for _, id := range req.ModelIDs {
		items = append(items, CompareItem{ModelID: id, InputTokens: req.InputTokens, OutputTokens: req.OutputTokens})
	}
	items = append(items, req.Items...)

	return h.Catalog.Compare(items, h.Options)
}
