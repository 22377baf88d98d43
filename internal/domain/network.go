package domain

import "fmt"

// DefaultNetworkName is used when a network arrives without a name
const DefaultNetworkName = "Unnamed Network"

// Network is the flat node/edge description a solver consumes
type Network struct {
	Name  string `json:"name"`
	Fluid string `json:"fluid,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NewNetwork creates an empty network
func NewNetwork(name string) *Network {
	return &Network{
		Name:  name,
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
}

// AddNode adds a node to the network
func (n *Network) AddNode(node Node) {
	n.Nodes = append(n.Nodes, node)
}

// AddEdge adds an edge to the network
func (n *Network) AddEdge(edge Edge) {
	n.Edges = append(n.Edges, edge)
}

// NodeByID returns the node with the given id
func (n *Network) NodeByID(id string) (*Node, bool) {
	for i := range n.Nodes {
		if n.Nodes[i].ID == id {
			return &n.Nodes[i], true
		}
	}
	return nil, false
}

// Validate checks the structural rules the backend relies on: unique ids,
// known kinds, resolvable endpoints and no self loops
func (n *Network) Validate() error {
	nodes := make(map[string]bool, len(n.Nodes))
	for i, node := range n.Nodes {
		if node.ID == "" {
			return fmt.Errorf("%w: node %d has no id", ErrInvalid, i)
		}
		if nodes[node.ID] {
			return fmt.Errorf("%w: duplicate node id %s", ErrInvalid, node.ID)
		}
		if !node.Type.IsNetworkKind() {
			return fmt.Errorf("%w: node %s has unsupported type %q", ErrInvalid, node.ID, node.Type)
		}
		nodes[node.ID] = true
	}

	edges := make(map[string]bool, len(n.Edges))
	for i, edge := range n.Edges {
		if edge.ID == "" {
			return fmt.Errorf("%w: edge %d has no id", ErrInvalid, i)
		}
		if edges[edge.ID] {
			return fmt.Errorf("%w: duplicate edge id %s", ErrInvalid, edge.ID)
		}
		if !edge.Type.IsNetworkKind() {
			return fmt.Errorf("%w: edge %s has unsupported type %q", ErrInvalid, edge.ID, edge.Type)
		}
		if !nodes[edge.FromNode] {
			return fmt.Errorf("%w: edge %s references unknown from_node %q", ErrInvalid, edge.ID, edge.FromNode)
		}
		if !nodes[edge.ToNode] {
			return fmt.Errorf("%w: edge %s references unknown to_node %q", ErrInvalid, edge.ID, edge.ToNode)
		}
		if edge.FromNode == edge.ToNode {
			return fmt.Errorf("%w: edge %s connects %s to itself", ErrInvalid, edge.ID, edge.FromNode)
		}
		edges[edge.ID] = true
	}

	return nil
}
