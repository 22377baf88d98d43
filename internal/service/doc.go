// Package service implements business logic for the gasnet server.
//
// Services coordinate between the HTTP handlers, the repository and the
// remote solver, applying validation and publishing events.
//
// # Services
//
// NetworkService stores, lists, deletes, imports and exports saved networks.
// Saving validates the network structure so the solver never sees dangling
// edges or visual-only kinds.
//
// SimulationService forwards a network to the solver. A solver that reports
// success false is a normal outcome; only transport and status failures are
// errors.
//
// # Event System
//
// Both services publish events via EventBus. The SSE hub and the optional
// NATS broker subscribe to it. Publishing never blocks; a slow subscriber
// misses events.
package service
