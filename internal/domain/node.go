package domain

// NodeKind represents the type of network node
type NodeKind string

const (
	NodeKindJunction              NodeKind = "junction"
	NodeKindExternalGrid          NodeKind = "external_grid"
	NodeKindSource                NodeKind = "source"
	NodeKindSink                  NodeKind = "sink"
	NodeKindPump                  NodeKind = "pump"
	NodeKindCircPumpMassFlow      NodeKind = "circ_pump_mass_flow"
	NodeKindCircPumpConstPressure NodeKind = "circ_pump_const_pressure"
	NodeKindCompressor            NodeKind = "compressor"
	NodeKindMassStorage           NodeKind = "mass_storage"
	NodeKindHeatExchanger         NodeKind = "heat_exchanger"
	NodeKindValve                 NodeKind = "valve" // visual only; a valve is an Edge in a Network
)

var networkNodeKinds = map[NodeKind]bool{
	NodeKindJunction:              true,
	NodeKindExternalGrid:          true,
	NodeKindSource:                true,
	NodeKindSink:                  true,
	NodeKindPump:                  true,
	NodeKindCircPumpMassFlow:      true,
	NodeKindCircPumpConstPressure: true,
	NodeKindCompressor:            true,
	NodeKindMassStorage:           true,
	NodeKindHeatExchanger:         true,
}

// IsNetworkKind reports whether k may appear as a Node in a Network
func (k NodeKind) IsNetworkKind() bool {
	return networkNodeKinds[k]
}

// IsVisualKind reports whether k may appear as a node on the canvas
func (k NodeKind) IsVisualKind() bool {
	return k == NodeKindValve || networkNodeKinds[k]
}

// Node represents a network element as the backend sees it
type Node struct {
	ID     string   `json:"id"`
	Type   NodeKind `json:"type"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Label  string   `json:"label,omitempty"`
	Params Params   `json:"params"`
}

// NewNode creates a node with the kind's default params
func NewNode(id string, kind NodeKind, x, y float64) *Node {
	return &Node{
		ID:     id,
		Type:   kind,
		X:      x,
		Y:      y,
		Params: DefaultNodeParams(kind),
	}
}

// SetParam sets a param value
func (n *Node) SetParam(key string, value any) {
	if n.Params == nil {
		n.Params = make(Params)
	}
	n.Params[key] = value
}

// GetParam gets a param value
func (n *Node) GetParam(key string) (any, bool) {
	if n.Params == nil {
		return nil, false
	}
	val, ok := n.Params[key]
	return val, ok
}
