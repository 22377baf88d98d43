// Package handler implements the HTTP API of the gasnet server.
//
// # Handlers
//
// NetworkHandler stores, lists, deletes, imports and exports saved networks.
// GET /api/networks/{id} sends the stored checksum as ETag and honours
// If-None-Match.
//
// SimulationHandler forwards networks to the solver through the
// simulation service.
//
// DiagramHandler converts networks to editor diagrams and back, applies
// simulation results to diagram nodes and reports network connectivity.
//
// # Errors
//
// Failures are answered with a JSON {error, details} body. Invalid input is
// 400, a missing network is 404, a solver rejecting the network is 422, an
// unreachable or failing solver is 502 and an open solver circuit is 503.
//
// # Middleware
//
// NewRouter wraps the mux in Recover, CORS, Logger and OTel, outermost
// first. The /events stream is served by the SSE hub.
package handler
