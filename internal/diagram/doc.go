// Package diagram implements the visual side of the gas network editor and the
// transformations between it and the domain Network.
//
// The visual model (Model, VisualNode, VisualEdge) is what a user manipulates on
// the canvas. A valve is drawn as a node with two connector edges, while the
// domain model treats it as a single edge. Expand turns a Network into visual
// elements when a saved network is loaded; Project collapses them back when
// the diagram is saved or simulated.
//
// # Identifiers
//
// Allocator hands out "n<k>" and "e<k>" ids during interactive editing. After a
// bulk load it is resynced from the loaded ids so later edits never collide.
//
// # Overlay
//
// ApplyResult clears every node's overlay and border colour, then writes the
// pressures and statuses from a successful SimulationResult by node id.
//
// # Concurrency
//
// A Model is owned by a single goroutine. It performs no locking.
package diagram
