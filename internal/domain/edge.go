package domain

// EdgeKind represents the type of two-terminal element
type EdgeKind string

const (
	EdgeKindPipe            EdgeKind = "pipe"
	EdgeKindValve           EdgeKind = "valve"
	EdgeKindFlowControl     EdgeKind = "flow_control"
	EdgeKindPressureControl EdgeKind = "pressure_control"
	EdgeKindCompressor      EdgeKind = "compressor"
	EdgeKindHeatExchanger   EdgeKind = "heat_exchanger"
	EdgeKindConnector       EdgeKind = "connector" // visual only; attaches a valve node to a neighbour
)

var networkEdgeKinds = map[EdgeKind]bool{
	EdgeKindPipe:            true,
	EdgeKindValve:           true,
	EdgeKindFlowControl:     true,
	EdgeKindPressureControl: true,
	EdgeKindCompressor:      true,
	EdgeKindHeatExchanger:   true,
}

// IsNetworkKind reports whether k may appear as an Edge in a Network
func (k EdgeKind) IsNetworkKind() bool {
	return networkEdgeKinds[k]
}

// IsVisualKind reports whether k may appear as an edge on the canvas.
// Valves are drawn as nodes, so EdgeKindValve is not a visual edge kind.
func (k EdgeKind) IsVisualKind() bool {
	return k == EdgeKindConnector || (networkEdgeKinds[k] && k != EdgeKindValve)
}

// Edge represents a connection between two nodes
type Edge struct {
	ID       string   `json:"id"`
	FromNode string   `json:"from_node"`
	ToNode   string   `json:"to_node"`
	Type     EdgeKind `json:"type"`
	Params   Params   `json:"params"`
}

// NewEdge creates an edge with the kind's default params
func NewEdge(id, from, to string, kind EdgeKind) *Edge {
	return &Edge{
		ID:       id,
		FromNode: from,
		ToNode:   to,
		Type:     kind,
		Params:   DefaultEdgeParams(kind),
	}
}

// SetParam sets a param value
func (e *Edge) SetParam(key string, value any) {
	if e.Params == nil {
		e.Params = make(Params)
	}
	e.Params[key] = value
}

// GetParam gets a param value
func (e *Edge) GetParam(key string) (any, bool) {
	if e.Params == nil {
		return nil, false
	}
	val, ok := e.Params[key]
	return val, ok
}

// Involves checks if this edge touches the given node ID
func (e *Edge) Involves(nodeID string) bool {
	return e.FromNode == nodeID || e.ToNode == nodeID
}

// OtherEnd returns the node ID on the other end of this edge
func (e *Edge) OtherEnd(nodeID string) string {
	if e.FromNode == nodeID {
		return e.ToNode
	}
	return e.FromNode
}
