package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/refselect/internal/server/response"
)

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":     "healthy",
		"service":    "refselect-lists",
		"lists":      h.lists.Len(),
		"cache":      h.cache.GetStats(),
		"started_at": utc.Time{Time: h.startTime},
		"timestamp":  utc.Now(),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
	})
}
