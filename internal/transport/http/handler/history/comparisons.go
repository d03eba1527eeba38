package history

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mandalnilabja/tokencost/internal/storage"
	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/shared"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 50
	maxLimit     = 500
)

// SaveComparison handles POST /api/history. The comparison is recomputed
// from the request so stored results always match current prices.
func (h *Handlers) SaveComparison(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		shared.WriteJSONError(w, "name is required", http.StatusBadRequest)
		return
	}

	result, err := h.Comparer.RunComparison(req.CompareRequest)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	ids := make([]string, len(result.Calculations))
	for i, c := range result.Calculations {
		ids[i] = c.Model.ID
	}

	analysis := result.Analysis
	cmp := &storage.SavedComparison{
		Name:            req.Name,
		ModelIDs:        ids,
		MinCost:         analysis.MinCost,
		MaxCost:         analysis.MaxCost,
		Calculations:    result.Calculations,
		Analysis:        &analysis,
		Recommendations: result.Recommendations,
	}
	if err := h.Storage.SaveComparison(cmp); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	h.Logger.Info("comparison saved", "id", cmp.ID, "models", len(ids))
	shared.WriteJSON(w, cmp, http.StatusCreated)
}

// ListComparisons handles GET /api/history.
func (h *Handlers) ListComparisons(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		shared.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.Storage.ListComparisons(filter)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}
	if list == nil {
		list = []*storage.ComparisonSummary{}
	}

	shared.WriteJSON(w, map[string]any{
		"comparisons": list,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	}, http.StatusOK)
}

// GetComparison handles GET /api/history/{id}.
func (h *Handlers) GetComparison(w http.ResponseWriter, r *http.Request) {
	cmp, err := h.Storage.GetComparison(r.PathValue("id"))
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	shared.WriteJSON(w, cmp, http.StatusOK)
}

// DeleteComparison handles DELETE /api/history/{id}.
func (h *Handlers) DeleteComparison(w http.ResponseWriter, r *http.Request) {
	if err := h.Storage.DeleteComparison(r.PathValue("id")); err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteComparisonsBefore handles DELETE /api/history?before_date=YYYY-MM-DD.
func (h *Handlers) DeleteComparisonsBefore(w http.ResponseWriter, r *http.Request) {
	beforeDate := r.URL.Query().Get("before_date")
	if beforeDate == "" {
		shared.WriteJSONError(w, "before_date query parameter is required (format: YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse(dateLayout, beforeDate); err != nil {
		shared.WriteJSONError(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	deleted, err := h.Storage.DeleteComparisonsBefore(beforeDate)
	if err != nil {
		shared.WriteError(w, h.Logger, err)
		return
	}

	h.Logger.Info("comparison history pruned", "before_date", beforeDate, "deleted", deleted)
	shared.WriteJSON(w, map[string]any{
		"deleted_count": deleted,
		"before_date":   beforeDate,
	}, http.StatusOK)
}

// parseFilter builds a ComparisonFilter from query parameters. Unlike the
// numeric paging values, malformed dates are rejected rather than ignored.
func parseFilter(r *http.Request) (storage.ComparisonFilter, error) {
	q := r.URL.Query()
	filter := storage.ComparisonFilter{
		ModelID: q.Get("model_id"),
		Limit:   defaultLimit,
	}

	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = min(limit, maxLimit)
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, errInvalidDate("start_date")
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, errInvalidDate("end_date")
		}
		// The end date is inclusive.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	return filter, nil
}

type errInvalidDate string

func (e errInvalidDate) Error() string {
	return "invalid " + string(e) + ": use YYYY-MM-DD"
}
