package api

import (
	"net/http"
)

// CheckHealth reports whether the service is alive and the last run succeeded.
// GET /health and GET /api/v1/health
//
// Before the first run completes the service is considered healthy.
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	snap := h.history.Snapshot()

	response := HealthResponse{
		Healthy: true,
		Checks: map[string]CheckResult{
			"process": {Passed: true, Message: "Service is running"},
		},
	}

	switch {
	case snap.Last == nil:
		response.Checks["last_run"] = CheckResult{
			Passed:  true,
			Message: "No run has completed yet",
		}
	case snap.Last.ExitCode() != 0:
		response.Healthy = false
		response.Checks["last_run"] = CheckResult{
			Passed:  false,
			Message: "Last run " + snap.Last.String(),
		}
	default:
		response.Checks["last_run"] = CheckResult{
			Passed:  true,
			Message: "Last run " + snap.Last.String(),
		}
	}

	status := http.StatusOK
	if !response.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
