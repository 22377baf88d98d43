// Package solver is the client for the remote hydraulic solver.
//
// The solver is an opaque HTTP service: it accepts a domain.Network at
// POST /simulate?fluid=<fluid> and answers with a domain.SimulationResult.
// Calls are throttled by a token bucket and guarded by a circuit breaker
// so a failing solver is not hammered while it recovers.
package solver
