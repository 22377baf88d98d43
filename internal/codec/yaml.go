package codec

import (
	"fmt"
	"io"

	"gasnet/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlNetwork represents the YAML structure for a network
type yamlNetwork struct {
	Name  string     `yaml:"name"`
	Fluid string     `yaml:"fluid,omitempty"`
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

type yamlNode struct {
	ID     string         `yaml:"id"`
	Type   string         `yaml:"type"`
	X      float64        `yaml:"x"`
	Y      float64        `yaml:"y"`
	Label  string         `yaml:"label,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
}

type yamlEdge struct {
	ID       string         `yaml:"id,omitempty"`
	FromNode string         `yaml:"from_node"`
	ToNode   string         `yaml:"to_node"`
	Type     string         `yaml:"type"`
	Params   map[string]any `yaml:"params,omitempty"`
}

// Parse imports a network from YAML. Edges without an id get one derived
// from their type and endpoints.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Network, error) {
	var yn yamlNetwork
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yn); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	network := domain.NewNetwork(yn.Name)
	network.Fluid = yn.Fluid

	// Convert nodes
	for _, n := range yn.Nodes {
		network.AddNode(domain.Node{
			ID:     n.ID,
			Type:   domain.NodeKind(n.Type),
			X:      n.X,
			Y:      n.Y,
			Label:  n.Label,
			Params: domain.Params(n.Params),
		})
	}

	// Convert edges
	for _, e := range yn.Edges {
		edge := domain.Edge{
			ID:       e.ID,
			FromNode: e.FromNode,
			ToNode:   e.ToNode,
			Type:     domain.EdgeKind(e.Type),
			Params:   domain.Params(e.Params),
		}
		if edge.ID == "" {
			edge.ID = fmt.Sprintf("%s_%s_%s", edge.Type, edge.FromNode, edge.ToNode)
		}
		network.AddEdge(edge)
	}

	normalize(network)
	return network, nil
}

// Export exports a network to YAML
func (c *YAMLCodec) Export(network *domain.Network, w io.Writer) error {
	yn := yamlNetwork{
		Name:  network.Name,
		Fluid: network.Fluid,
		Nodes: make([]yamlNode, 0, len(network.Nodes)),
		Edges: make([]yamlEdge, 0, len(network.Edges)),
	}

	for _, n := range network.Nodes {
		yn.Nodes = append(yn.Nodes, yamlNode{
			ID:     n.ID,
			Type:   string(n.Type),
			X:      n.X,
			Y:      n.Y,
			Label:  n.Label,
			Params: n.Params,
		})
	}

	for _, e := range network.Edges {
		yn.Edges = append(yn.Edges, yamlEdge{
			ID:       e.ID,
			FromNode: e.FromNode,
			ToNode:   e.ToNode,
			Type:     string(e.Type),
			Params:   e.Params,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yn); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
