package handler

import (
	"net/http"

	"gasnet/internal/diagram"
	"gasnet/internal/domain"
	"gasnet/internal/topology"
)

// DiagramResponse is a network laid out for the editor canvas
type DiagramResponse struct {
	Nodes []diagram.VisualNode `json:"nodes"`
	Edges []diagram.VisualEdge `json:"edges"`
}

// ProjectRequest is a canvas to turn back into a network
type ProjectRequest struct {
	Name  string               `json:"name"`
	Nodes []diagram.VisualNode `json:"nodes"`
	Edges []diagram.VisualEdge `json:"edges"`
}

// OverlayRequest pairs canvas nodes with a simulation result
type OverlayRequest struct {
	Nodes  []diagram.VisualNode    `json:"nodes"`
	Result domain.SimulationResult `json:"result"`
}

// DiagramHandler converts between networks and editor diagrams. It holds no
// state; every call is a pure transformation of its body.
type DiagramHandler struct{}

// NewDiagramHandler creates a new diagram handler
func NewDiagramHandler() *DiagramHandler {
	return &DiagramHandler{}
}

// Expand turns a network into canvas nodes and edges
func (h *DiagramHandler) Expand(w http.ResponseWriter, r *http.Request) {
	var network domain.Network
	if !decodeJSON(w, r, &network) {
		return
	}

	if err := diagram.CheckExpandable(network); err != nil {
		writeServiceError(w, "Invalid network", err)
		return
	}

	nodes, edges := diagram.Expand(network)
	writeJSON(w, DiagramResponse{Nodes: nodes, Edges: edges}, http.StatusOK)
}

// Project turns canvas nodes and edges into a network
func (h *DiagramHandler) Project(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := req.Name
	if name == "" {
		name = domain.DefaultNetworkName
	}
	writeJSON(w, diagram.Project(name, req.Nodes, req.Edges), http.StatusOK)
}

// Overlay applies a simulation result to canvas nodes
func (h *DiagramHandler) Overlay(w http.ResponseWriter, r *http.Request) {
	var req OverlayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	nodes := diagram.ApplyResult(req.Nodes, req.Result)
	if nodes == nil {
		nodes = []diagram.VisualNode{}
	}
	writeJSON(w, nodes, http.StatusOK)
}

// Analyze reports the connectivity of a network
func (h *DiagramHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var network domain.Network
	if !decodeJSON(w, r, &network) {
		return
	}
	writeJSON(w, topology.Analyze(network), http.StatusOK)
}
