// Package domain defines the core domain types for the gas network editor.
//
// This package contains the flat network description exchanged with the
// simulation backend and the persistence service. It knows nothing about
// canvas presentation; the visual model lives in the diagram package.
//
// # Core Types
//
// Node represents a network element placed at a junction (external grid,
// source, sink, pump, storage, ...) with kind-specific params.
//
// Edge represents a two-terminal element between nodes (pipe, valve, flow
// control, pressure control, compressor, heat exchanger).
//
// Network is the named, ordered collection of nodes and edges a solver
// consumes.
//
// # Defaults
//
// Every node and edge kind has a canonical default parameter set. The same
// table feeds palette placement in the editor and default-filling when a
// diagram is projected back into a Network.
//
// # Simulation Results
//
// SimulationResult carries the solver's per-node pressures and statuses and
// per-edge flows. A result with Success=false is a normal outcome, not an
// error.
//
// # Design Principles
//
// - No database or external dependencies
// - Wire shapes match the backend JSON exactly
// - Validation returns errors wrapping ErrInvalid
package domain
