package diagram

import "gasnet/internal/domain"

// CollapsedValvePrefix prefixes the id of a domain valve edge built from a
// valve node
const CollapsedValvePrefix = "e_valve_"

// Project converts visual nodes and edges into a domain network. Non-valve
// nodes and non-connector edges pass through, with edge params filled from
// the kind defaults. Each valve node with exactly two connectors collapses
// into one valve edge between the connectors' far ends; any other valve
// node is left out. An edge is only emitted when both of its ends are
// emitted nodes, so the result never holds a dangling edge. The inputs are
// not modified.
func Project(name string, nodes []VisualNode, edges []VisualEdge) domain.Network {
	net := domain.NewNetwork(name)
	emitted := make(map[string]bool, len(nodes))

	for _, n := range nodes {
		if n.Kind == domain.NodeKindValve {
			continue
		}
		emitted[n.ID] = true
		net.AddNode(domain.Node{
			ID:     n.ID,
			Type:   n.Kind,
			X:      n.Position.X,
			Y:      n.Position.Y,
			Label:  n.Label,
			Params: n.Params.Clone(),
		})
	}

	for _, e := range edges {
		if e.Kind == domain.EdgeKindConnector || !emitted[e.Source] || !emitted[e.Target] {
			continue
		}
		net.AddEdge(domain.Edge{
			ID:       e.ID,
			FromNode: e.Source,
			ToNode:   e.Target,
			Type:     e.Kind,
			Params:   e.Params.WithDefaults(domain.DefaultEdgeParams(e.Kind)),
		})
	}

	for _, n := range nodes {
		if n.Kind != domain.NodeKindValve {
			continue
		}
		e, ok := CollapseValve(n, edges)
		if !ok || !emitted[e.FromNode] || !emitted[e.ToNode] {
			continue
		}
		net.AddEdge(e)
	}

	return *net
}

// CollapseValve builds the domain valve edge for valve node v. It reports
// false when v does not have exactly two incident connectors.
func CollapseValve(v VisualNode, edges []VisualEdge) (domain.Edge, bool) {
	var ends []string
	for _, e := range edges {
		if e.Kind != domain.EdgeKindConnector || !e.Touches(v.ID) {
			continue
		}
		ends = append(ends, e.OtherEnd(v.ID))
	}
	if len(ends) != 2 {
		return domain.Edge{}, false
	}

	return domain.Edge{
		ID:       CollapsedValvePrefix + v.ID,
		FromNode: ends[0],
		ToNode:   ends[1],
		Type:     domain.EdgeKindValve,
		Params:   v.Params.WithDefaults(domain.ValveParams()),
	}, true
}
