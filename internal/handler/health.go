package handler

import (
	"net/http"

	"gasnet/internal/solver"
)

// BreakerReporter exposes the solver circuit state
type BreakerReporter interface {
	BreakerState() solver.State
}

// Health answers liveness probes with the solver circuit state
func Health(solverClient BreakerReporter, sseClients func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"status": "ok"}
		if solverClient != nil {
			resp["solver"] = solverClient.BreakerState().String()
		}
		if sseClients != nil {
			resp["sse_clients"] = sseClients()
		}
		writeJSON(w, resp, http.StatusOK)
	}
}
