package diagram

import (
	"fmt"

	"gasnet/internal/domain"
)

// Prefixes of ids synthesized when a valve edge is expanded
const (
	ValveNodePrefix    = "v_"
	ConnectorInSuffix  = "_in"
	ConnectorOutSuffix = "_out"
	ConnectorPrefix    = "c_"
)

// ValveNodeID is the visual node id for the domain valve edge edgeID
func ValveNodeID(edgeID string) string {
	return ValveNodePrefix + edgeID
}

// CheckExpandable reports an ErrInvalid error when network holds a node or
// edge kind that has no place in a domain network. Valve nodes and
// connector edges are canvas-only, so expanding them would leave a valve
// without connectors or a connector without a valve. Unresolved endpoints
// are allowed.
func CheckExpandable(network domain.Network) error {
	for _, n := range network.Nodes {
		if !n.Type.IsNetworkKind() {
			return fmt.Errorf("%w: node %s has unsupported type %q", domain.ErrInvalid, n.ID, n.Type)
		}
	}
	for _, e := range network.Edges {
		if !e.Type.IsNetworkKind() {
			return fmt.Errorf("%w: edge %s has unsupported type %q", domain.ErrInvalid, e.ID, e.Type)
		}
	}
	return nil
}

// Expand converts a domain network into visual nodes and edges. Every
// domain node becomes one visual node. Every valve edge becomes a valve
// node at the midpoint of its endpoints plus two connectors; all other
// edges pass through. Nothing is dropped. Callers holding untrusted input
// check it with CheckExpandable first.
func Expand(network domain.Network) ([]VisualNode, []VisualEdge) {
	nodes := make([]VisualNode, 0, len(network.Nodes))
	edges := make([]VisualEdge, 0, len(network.Edges))

	positions := make(map[string]Position, len(network.Nodes))
	taken := make(map[string]bool, len(network.Nodes))
	takenEdges := make(map[string]bool, len(network.Edges))
	for _, e := range network.Edges {
		if e.Type != domain.EdgeKindValve {
			takenEdges[e.ID] = true
		}
	}
	for _, n := range network.Nodes {
		label := n.Label
		if label == "" {
			label = string(n.Type) + "_" + n.ID
		}
		pos := Position{X: n.X, Y: n.Y}
		positions[n.ID] = pos
		taken[n.ID] = true
		nodes = append(nodes, VisualNode{
			ID:       n.ID,
			Kind:     n.Type,
			Position: pos,
			Label:    label,
			Params:   n.Params.Clone(),
		})
	}

	for _, e := range network.Edges {
		if e.Type != domain.EdgeKindValve {
			edges = append(edges, VisualEdge{
				ID:     e.ID,
				Source: e.FromNode,
				Target: e.ToNode,
				Kind:   e.Type,
				Params: e.Params.Clone(),
			})
			continue
		}

		valveID := freeID(taken, ValveNodeID(e.ID))
		inID := freeID(takenEdges, ConnectorPrefix+e.ID+ConnectorInSuffix)
		outID := freeID(takenEdges, ConnectorPrefix+e.ID+ConnectorOutSuffix)

		nodes = append(nodes, VisualNode{
			ID:       valveID,
			Kind:     domain.NodeKindValve,
			Position: midpoint(positions, e.FromNode, e.ToNode),
			Label:    "valve_" + e.ID,
			Params:   e.Params.WithDefaults(domain.ValveParams()),
		})
		edges = append(edges,
			VisualEdge{
				ID:     inID,
				Source: e.FromNode,
				Target: valveID,
				Kind:   domain.EdgeKindConnector,
				Params: domain.Params{},
			},
			VisualEdge{
				ID:     outID,
				Source: valveID,
				Target: e.ToNode,
				Kind:   domain.EdgeKindConnector,
				Params: domain.Params{},
			},
		)
	}

	return nodes, edges
}

// freeID appends "_" to id until it is not in taken, then claims it
func freeID(taken map[string]bool, id string) string {
	for taken[id] {
		id += "_"
	}
	taken[id] = true
	return id
}

// midpoint of two node positions, or the origin when either is unknown
func midpoint(positions map[string]Position, a, b string) Position {
	pa, okA := positions[a]
	pb, okB := positions[b]
	if !okA || !okB {
		return Position{}
	}
	return Position{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2}
}
