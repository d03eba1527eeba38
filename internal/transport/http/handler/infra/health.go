// Package infra serves status and health endpoints.
package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/tokencost/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/tokencost/internal/version"
)

// RootStatus returns JSON status and version information at /.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		shared.WriteJSONError(w, "not found", http.StatusNotFound)
		return
	}
	shared.WriteJSON(w, map[string]any{
		"name":    "tokencost",
		"version": version.Version,
		"status":  "running",
		"api":     "/api",
	}, http.StatusOK)
}

// HealthCheck reports whether the catalog, and through it storage, answers.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	dbStatus := "connected"

	entries, err := h.Catalog.List("")
	if err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		dbStatus = "error: " + err.Error()
	}

	resp := map[string]any{
		"status":         status,
		"app":            "tokencost",
		"version":        version.Version,
		"uptime_seconds": int64(time.Since(h.StartTime).Seconds()),
		"database":       dbStatus,
		"models":         len(entries),
	}
	if h.Cache != nil && h.Cache.Metrics != nil {
		resp["cache_hit_ratio"] = h.Cache.Metrics.Ratio()
	}

	shared.WriteJSON(w, resp, code)
}
