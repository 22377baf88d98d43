package handler

import (
	"net/http"

	"gasnet/internal/hub"
	"gasnet/internal/service"
	"gasnet/internal/solver"
)

// Deps are the collaborators the HTTP API is built from
type Deps struct {
	Networks   *service.NetworkService
	Simulation *service.SimulationService
	Solver     *solver.Client
	Hub        *hub.Hub
	CORSOrigin string
}

// NewRouter registers every API route and wraps the mux in the middleware
// chain
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	networks := NewNetworkHandler(d.Networks)
	mux.HandleFunc("GET /api/networks", networks.ListNetworks)
	mux.HandleFunc("POST /api/networks", networks.CreateNetwork)
	mux.HandleFunc("GET /api/networks/{id}", networks.GetNetwork)
	mux.HandleFunc("DELETE /api/networks/{id}", networks.DeleteNetwork)
	mux.HandleFunc("GET /api/networks/{id}/export", networks.ExportNetwork)
	mux.HandleFunc("POST /api/import", networks.ImportNetwork)

	sim := NewSimulationHandler(d.Simulation)
	mux.HandleFunc("POST /api/simulate", sim.Simulate)
	mux.HandleFunc("POST /api/simulate/{id}", sim.SimulateStored)

	diag := NewDiagramHandler()
	mux.HandleFunc("POST /api/diagram/expand", diag.Expand)
	mux.HandleFunc("POST /api/diagram/project", diag.Project)
	mux.HandleFunc("POST /api/diagram/overlay", diag.Overlay)
	mux.HandleFunc("POST /api/analyze", diag.Analyze)

	var breaker BreakerReporter
	if d.Solver != nil {
		breaker = d.Solver
	}
	var sseClients func() int
	if d.Hub != nil {
		mux.Handle("GET /events", d.Hub)
		sseClients = d.Hub.ClientCount
	}
	mux.HandleFunc("GET /healthz", Health(breaker, sseClients))

	origin := d.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	return Chain(mux,
		Recover,
		CORS(origin),
		Logger,
		OTel("gasnet"),
	)
}
