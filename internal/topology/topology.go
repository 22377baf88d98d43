// Package topology analyses the connectivity of a network.
package topology

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"gasnet/internal/domain"
)

// Component is one connected group of nodes
type Component struct {
	Nodes    []string `json:"nodes"`
	Supplied bool     `json:"supplied"`
}

// Report describes how a network's nodes hang together
type Report struct {
	Components    []Component `json:"components"`
	Unsupplied    []string    `json:"unsupplied"`
	DanglingEdges []string    `json:"dangling_edges"`
	Connected     bool        `json:"connected"`
}

// Analyze builds an undirected graph from the network and reports its
// connected components. A component is supplied when it contains an
// external_grid node. Edges whose endpoints are missing are reported and
// left out of the graph.
func Analyze(net domain.Network) Report {
	g := simple.NewUndirectedGraph()

	ids := make(map[string]int64, len(net.Nodes))
	names := make(map[int64]string, len(net.Nodes))
	kinds := make(map[int64]domain.NodeKind, len(net.Nodes))
	for _, n := range net.Nodes {
		if _, dup := ids[n.ID]; dup {
			continue
		}
		gn := g.NewNode()
		g.AddNode(gn)
		ids[n.ID] = gn.ID()
		names[gn.ID()] = n.ID
		kinds[gn.ID()] = n.Type
	}

	report := Report{
		Components:    make([]Component, 0),
		Unsupplied:    make([]string, 0),
		DanglingEdges: make([]string, 0),
	}

	for _, e := range net.Edges {
		from, okFrom := ids[e.FromNode]
		to, okTo := ids[e.ToNode]
		if !okFrom || !okTo {
			report.DanglingEdges = append(report.DanglingEdges, e.ID)
			continue
		}
		// simple graphs reject self loops
		if from == to {
			continue
		}
		g.SetEdge(g.NewEdge(g.Node(from), g.Node(to)))
	}

	for _, cc := range topo.ConnectedComponents(g) {
		c := component(cc, names, kinds)
		report.Components = append(report.Components, c)
		if !c.Supplied {
			report.Unsupplied = append(report.Unsupplied, c.Nodes...)
		}
	}

	sort.Slice(report.Components, func(i, j int) bool {
		return report.Components[i].Nodes[0] < report.Components[j].Nodes[0]
	})
	sort.Strings(report.Unsupplied)
	report.Connected = len(report.Components) <= 1

	return report
}

func component(nodes []graph.Node, names map[int64]string, kinds map[int64]domain.NodeKind) Component {
	c := Component{Nodes: make([]string, 0, len(nodes))}
	for _, n := range nodes {
		c.Nodes = append(c.Nodes, names[n.ID()])
		if kinds[n.ID()] == domain.NodeKindExternalGrid {
			c.Supplied = true
		}
	}
	sort.Strings(c.Nodes)
	return c
}
