package diagram

import (
	"errors"
	"fmt"
	"strings"

	"gasnet/internal/domain"
)

var (
	ErrUnknownNode        = errors.New("unknown node")
	ErrUnknownEdge        = errors.New("unknown edge")
	ErrInvalidConnection  = errors.New("invalid connection")
	ErrConnectorHasParams = errors.New("connector edges carry no params")
)

// Position is a point in canvas coordinates
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style holds presentation state derived from the model
type Style struct {
	BorderColor string `json:"border_color,omitempty"`
}

// VisualNode is a positioned node on the canvas
type VisualNode struct {
	ID       string          `json:"id"`
	Kind     domain.NodeKind `json:"kind"`
	Position Position        `json:"position"`
	Label    string          `json:"label"`
	Params   domain.Params   `json:"params"`
	Overlay  *Overlay        `json:"overlay,omitempty"`
	Style    Style           `json:"style"`
}

func (n *VisualNode) clone() VisualNode {
	out := *n
	out.Params = n.Params.Clone()
	if n.Overlay != nil {
		ov := n.Overlay.clone()
		out.Overlay = &ov
	}
	return out
}

// VisualEdge is a drawn connection between two visual nodes
type VisualEdge struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Target string          `json:"target"`
	Kind   domain.EdgeKind `json:"kind"`
	Params domain.Params   `json:"params"`
}

func (e *VisualEdge) clone() VisualEdge {
	out := *e
	out.Params = e.Params.Clone()
	return out
}

// RenderType is the edge renderer name; pipes use the curved smoothstep style
func (e *VisualEdge) RenderType() string {
	if e.Kind == domain.EdgeKindPipe {
		return "smoothstep"
	}
	return string(e.Kind)
}

// Touches reports whether the edge is incident to the node
func (e *VisualEdge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// OtherEnd returns the endpoint that is not nodeID
func (e *VisualEdge) OtherEnd(nodeID string) string {
	if e.Source == nodeID {
		return e.Target
	}
	return e.Source
}

// Tool is the palette entry currently armed by the user. The same name can
// place a node (pane click) and pick the edge kind of a drag-connect, as
// with compressor and heat_exchanger.
type Tool string

const ToolNone Tool = ""

func (t Tool) nodeKind() (domain.NodeKind, bool) {
	k := domain.NodeKind(t)
	return k, k.IsVisualKind()
}

func (t Tool) edgeKind() (domain.EdgeKind, bool) {
	k := domain.EdgeKind(t)
	return k, k.IsVisualKind() && k != domain.EdgeKindConnector
}

// Model is the live, mutable diagram plus selection and tool state
type Model struct {
	ids   *Allocator
	nodes []*VisualNode
	edges []*VisualEdge

	tool         Tool
	selectedNode string
	selectedEdge string
}

// NewModel creates an empty diagram owning the given allocator.
// A nil allocator gets a fresh one.
func NewModel(ids *Allocator) *Model {
	if ids == nil {
		ids = NewAllocator()
	}
	return &Model{ids: ids}
}

// Allocator returns the id allocator owned by the model
func (m *Model) Allocator() *Allocator {
	return m.ids
}

// Nodes returns copies of all visual nodes in insertion order
func (m *Model) Nodes() []VisualNode {
	out := make([]VisualNode, 0, len(m.nodes))
	for _, n := range m.nodes {
		out = append(out, n.clone())
	}
	return out
}

// Edges returns copies of all visual edges in insertion order
func (m *Model) Edges() []VisualEdge {
	out := make([]VisualEdge, 0, len(m.edges))
	for _, e := range m.edges {
		out = append(out, e.clone())
	}
	return out
}

// Node returns a copy of the node with the given id
func (m *Model) Node(id string) (VisualNode, bool) {
	if n := m.node(id); n != nil {
		return n.clone(), true
	}
	return VisualNode{}, false
}

// Edge returns a copy of the edge with the given id
func (m *Model) Edge(id string) (VisualEdge, bool) {
	if e := m.edge(id); e != nil {
		return e.clone(), true
	}
	return VisualEdge{}, false
}

func (m *Model) node(id string) *VisualNode {
	for _, n := range m.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (m *Model) edge(id string) *VisualEdge {
	for _, e := range m.edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// SelectTool arms a palette tool; ToolNone disarms
func (m *Model) SelectTool(t Tool) {
	m.tool = t
}

// Tool returns the armed palette tool
func (m *Model) Tool() Tool {
	return m.tool
}

// AddNode creates a node of the given kind with its default params
func (m *Model) AddNode(kind domain.NodeKind, pos Position) (VisualNode, error) {
	if !kind.IsVisualKind() {
		return VisualNode{}, fmt.Errorf("unsupported node kind %q", kind)
	}
	id := m.ids.NodeID()
	n := &VisualNode{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Label:    string(kind) + "_" + strings.TrimPrefix(id, "n"),
		Params:   domain.DefaultNodeParams(kind),
	}
	m.nodes = append(m.nodes, n)
	return n.clone(), nil
}

// PlaceNode handles a pane click: when the armed tool names a node kind a
// node is created there and the tool is disarmed. It reports whether a node
// was placed.
func (m *Model) PlaceNode(pos Position) (VisualNode, bool) {
	kind, ok := m.tool.nodeKind()
	if !ok {
		return VisualNode{}, false
	}
	n, err := m.AddNode(kind, pos)
	if err != nil {
		return VisualNode{}, false
	}
	m.tool = ToolNone
	return n, true
}

// Connect handles a drag-connect between two nodes. The edge kind is the
// armed tool when it names an edge kind, pipe otherwise; an edge touching a
// valve node is always a connector.
func (m *Model) Connect(source, target string) (VisualEdge, error) {
	kind, ok := m.tool.edgeKind()
	if !ok {
		kind = domain.EdgeKindPipe
	}
	return m.ConnectWith(kind, source, target)
}

// ConnectWith creates an edge of an explicit kind
func (m *Model) ConnectWith(kind domain.EdgeKind, source, target string) (VisualEdge, error) {
	src := m.node(source)
	if src == nil {
		return VisualEdge{}, fmt.Errorf("%w: %s", ErrUnknownNode, source)
	}
	dst := m.node(target)
	if dst == nil {
		return VisualEdge{}, fmt.Errorf("%w: %s", ErrUnknownNode, target)
	}
	if source == target {
		return VisualEdge{}, fmt.Errorf("%w: %s connects to itself", ErrInvalidConnection, source)
	}

	srcValve := src.Kind == domain.NodeKindValve
	dstValve := dst.Kind == domain.NodeKindValve
	switch {
	case srcValve && dstValve:
		return VisualEdge{}, fmt.Errorf("%w: valve %s cannot connect directly to valve %s", ErrInvalidConnection, source, target)
	case srcValve || dstValve:
		kind = domain.EdgeKindConnector
	case kind == domain.EdgeKindConnector:
		return VisualEdge{}, fmt.Errorf("%w: connector needs a valve endpoint", ErrInvalidConnection)
	case !kind.IsVisualKind():
		return VisualEdge{}, fmt.Errorf("%w: unsupported edge kind %q", ErrInvalidConnection, kind)
	}

	e := &VisualEdge{
		ID:     m.ids.EdgeID(),
		Source: source,
		Target: target,
		Kind:   kind,
		Params: domain.DefaultEdgeParams(kind),
	}
	m.edges = append(m.edges, e)
	return e.clone(), nil
}

// MoveNode sets a node's canvas position
func (m *Model) MoveNode(id string, pos Position) error {
	n := m.node(id)
	if n == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	n.Position = pos
	return nil
}

// UpdateNode applies a property-panel edit. A nil params map keeps the
// current params.
func (m *Model) UpdateNode(id, label string, params domain.Params) error {
	n := m.node(id)
	if n == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	n.Label = label
	if params != nil {
		n.Params = params.Clone()
	}
	return nil
}

// UpdateEdge replaces an edge's params
func (m *Model) UpdateEdge(id string, params domain.Params) error {
	e := m.edge(id)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	if e.Kind == domain.EdgeKindConnector {
		return fmt.Errorf("%w: %s", ErrConnectorHasParams, id)
	}
	e.Params = params.Clone()
	return nil
}

// SelectNode selects a node and clears any edge selection
func (m *Model) SelectNode(id string) error {
	if m.node(id) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	m.selectedNode, m.selectedEdge = id, ""
	return nil
}

// SelectEdge selects an edge and clears any node selection
func (m *Model) SelectEdge(id string) error {
	if m.edge(id) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	m.selectedNode, m.selectedEdge = "", id
	return nil
}

// ClearSelection deselects everything
func (m *Model) ClearSelection() {
	m.selectedNode, m.selectedEdge = "", ""
}

// Selection returns the selected node and edge ids; at most one is set
func (m *Model) Selection() (nodeID, edgeID string) {
	return m.selectedNode, m.selectedEdge
}

// DeleteNode removes a node and every edge incident to it. Deleting a valve
// node therefore removes both of its connectors.
func (m *Model) DeleteNode(id string) error {
	if m.node(id) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	nodes := m.nodes[:0]
	for _, n := range m.nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	m.nodes = nodes

	edges := m.edges[:0]
	for _, e := range m.edges {
		if e.Touches(id) {
			if m.selectedEdge == e.ID {
				m.selectedEdge = ""
			}
			continue
		}
		edges = append(edges, e)
	}
	m.edges = edges

	if m.selectedNode == id {
		m.selectedNode = ""
	}
	return nil
}

// DeleteEdge removes a single edge
func (m *Model) DeleteEdge(id string) error {
	for i, e := range m.edges {
		if e.ID == id {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			if m.selectedEdge == id {
				m.selectedEdge = ""
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
}

// DeleteSelected deletes the selected node or edge and reports whether
// anything was removed
func (m *Model) DeleteSelected() bool {
	switch {
	case m.selectedNode != "":
		return m.DeleteNode(m.selectedNode) == nil
	case m.selectedEdge != "":
		return m.DeleteEdge(m.selectedEdge) == nil
	}
	return false
}

// Load replaces the diagram with the expansion of network, clears selection
// and tool state, and resyncs the allocator from every loaded and
// synthesized id. A network CheckExpandable rejects leaves the model
// unchanged.
func (m *Model) Load(network domain.Network) error {
	if err := CheckExpandable(network); err != nil {
		return err
	}
	nodes, edges := Expand(network)

	m.nodes = make([]*VisualNode, 0, len(nodes))
	nodeIDs := make([]string, 0, len(nodes))
	for i := range nodes {
		m.nodes = append(m.nodes, &nodes[i])
		nodeIDs = append(nodeIDs, nodes[i].ID)
	}

	m.edges = make([]*VisualEdge, 0, len(edges))
	edgeIDs := make([]string, 0, len(edges))
	for i := range edges {
		m.edges = append(m.edges, &edges[i])
		edgeIDs = append(edgeIDs, edges[i].ID)
	}

	m.ids.Resync(nodeIDs, edgeIDs)
	m.tool = ToolNone
	m.ClearSelection()
	return nil
}

// Project returns the domain network for the current diagram. The model is
// not modified.
func (m *Model) Project(name string) domain.Network {
	return Project(name, m.Nodes(), m.Edges())
}
