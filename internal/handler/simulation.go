package handler

import (
	"net/http"

	"gasnet/internal/domain"
	"gasnet/internal/service"
)

// SimulationHandler proxies simulation requests to the solver
type SimulationHandler struct {
	svc *service.SimulationService
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(svc *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{svc: svc}
}

// Simulate runs the network in the request body
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var network domain.Network
	if !decodeJSON(w, r, &network) {
		return
	}

	res, err := h.svc.Simulate(r.Context(), network, r.URL.Query().Get("fluid"))
	if err != nil {
		writeServiceError(w, "Simulation failed", err)
		return
	}
	writeJSON(w, res, http.StatusOK)
}

// SimulateStored runs a saved network
func (h *SimulationHandler) SimulateStored(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.svc.SimulateStored(r.Context(), id, r.URL.Query().Get("fluid"))
	if err != nil {
		writeServiceError(w, "Simulation failed", err)
		return
	}
	writeJSON(w, res, http.StatusOK)
}
