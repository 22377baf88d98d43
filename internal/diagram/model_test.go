package diagram

import (
	"errors"
	"testing"

	"gasnet/internal/domain"
)

// valveDiagram builds grid -> valve -> sink drawn on the canvas
func valveDiagram(t *testing.T) (*Model, VisualNode, VisualNode, VisualNode) {
	t.Helper()
	m := NewModel(nil)
	grid := mustAddNode(t, m, domain.NodeKindExternalGrid, Position{0, 0})
	valve := mustAddNode(t, m, domain.NodeKindValve, Position{50, 0})
	sink := mustAddNode(t, m, domain.NodeKindSink, Position{100, 0})
	mustConnect(t, m, grid.ID, valve.ID)
	mustConnect(t, m, valve.ID, sink.ID)
	return m, grid, valve, sink
}

func mustAddNode(t *testing.T, m *Model, kind domain.NodeKind, pos Position) VisualNode {
	t.Helper()
	n, err := m.AddNode(kind, pos)
	if err != nil {
		t.Fatalf("AddNode(%s) failed: %v", kind, err)
	}
	return n
}

func mustConnect(t *testing.T, m *Model, source, target string) VisualEdge {
	t.Helper()
	e, err := m.Connect(source, target)
	if err != nil {
		t.Fatalf("Connect(%s, %s) failed: %v", source, target, err)
	}
	return e
}

func TestModelPlaceNode(t *testing.T) {
	t.Run("no tool places nothing", func(t *testing.T) {
		m := NewModel(nil)
		if _, ok := m.PlaceNode(Position{10, 10}); ok {
			t.Error("expected no node without an armed tool")
		}
		if len(m.Nodes()) != 0 {
			t.Errorf("expected empty diagram, got %d nodes", len(m.Nodes()))
		}
	})

	t.Run("edge tool places nothing", func(t *testing.T) {
		m := NewModel(nil)
		m.SelectTool(Tool(domain.EdgeKindPipe))
		if _, ok := m.PlaceNode(Position{10, 10}); ok {
			t.Error("expected pipe tool not to place a node")
		}
		if m.Tool() != Tool(domain.EdgeKindPipe) {
			t.Error("expected tool to stay armed")
		}
	})

	t.Run("node tool places once", func(t *testing.T) {
		m := NewModel(nil)
		m.SelectTool(Tool(domain.NodeKindSink))

		n, ok := m.PlaceNode(Position{10, 20})
		if !ok {
			t.Fatal("expected node to be placed")
		}
		if n.ID != "n1" || n.Label != "sink_1" {
			t.Errorf("got id %q label %q, want n1 sink_1", n.ID, n.Label)
		}
		if n.Position != (Position{10, 20}) {
			t.Errorf("got position %+v", n.Position)
		}
		if v, _ := n.Params.Float("p_min_bar"); v != 20.0 {
			t.Errorf("expected default p_min_bar 20, got %v", v)
		}
		if m.Tool() != ToolNone {
			t.Errorf("expected tool cleared, got %q", m.Tool())
		}
		if _, ok := m.PlaceNode(Position{30, 30}); ok {
			t.Error("expected second click to place nothing")
		}
	})

	t.Run("valve tool places valve node", func(t *testing.T) {
		m := NewModel(nil)
		m.SelectTool(Tool(domain.NodeKindValve))
		n, ok := m.PlaceNode(Position{})
		if !ok {
			t.Fatal("expected valve node")
		}
		if opened, _ := n.Params.Bool("opened"); !opened {
			t.Error("expected valve default opened=true")
		}
	})
}

func TestModelAddNodeRejectsUnknownKind(t *testing.T) {
	m := NewModel(nil)
	if _, err := m.AddNode("turbine", Position{}); err == nil {
		t.Error("expected error for unknown node kind")
	}
}

func TestModelConnect(t *testing.T) {
	t.Run("defaults to pipe", func(t *testing.T) {
		m := NewModel(nil)
		a := mustAddNode(t, m, domain.NodeKindJunction, Position{})
		b := mustAddNode(t, m, domain.NodeKindJunction, Position{})

		e := mustConnect(t, m, a.ID, b.ID)
		if e.Kind != domain.EdgeKindPipe {
			t.Errorf("got kind %q, want pipe", e.Kind)
		}
		if e.ID != "e1" {
			t.Errorf("got id %q, want e1", e.ID)
		}
		if e.RenderType() != "smoothstep" {
			t.Errorf("got render type %q", e.RenderType())
		}
		if v, _ := e.Params.Float("length_m"); v != 1000 {
			t.Errorf("expected default length_m 1000, got %v", v)
		}
	})

	t.Run("uses armed edge tool", func(t *testing.T) {
		m := NewModel(nil)
		a := mustAddNode(t, m, domain.NodeKindJunction, Position{})
		b := mustAddNode(t, m, domain.NodeKindJunction, Position{})
		m.SelectTool(Tool(domain.EdgeKindFlowControl))

		e := mustConnect(t, m, a.ID, b.ID)
		if e.Kind != domain.EdgeKindFlowControl {
			t.Errorf("got kind %q, want flow_control", e.Kind)
		}
	})

	t.Run("valve endpoint forces connector", func(t *testing.T) {
		m, _, valve, _ := valveDiagram(t)
		for _, e := range m.Edges() {
			if !e.Touches(valve.ID) {
				continue
			}
			if e.Kind != domain.EdgeKindConnector {
				t.Errorf("edge %s: got kind %q, want connector", e.ID, e.Kind)
			}
			if len(e.Params) != 0 {
				t.Errorf("edge %s: connector has params %v", e.ID, e.Params)
			}
		}
	})

	tests := []struct {
		name   string
		source string
		target string
		want   error
	}{
		{"unknown source", "n9", "n1", ErrUnknownNode},
		{"unknown target", "n1", "n9", ErrUnknownNode},
		{"self loop", "n1", "n1", ErrInvalidConnection},
		{"valve to valve", "n2", "n4", ErrInvalidConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _, _ := valveDiagram(t)
			mustAddNode(t, m, domain.NodeKindValve, Position{}) // n4
			before := len(m.Edges())

			_, err := m.Connect(tt.source, tt.target)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(m.Edges()) != before {
				t.Error("expected no edge to be added on error")
			}
		})
	}
}

func TestModelUpdate(t *testing.T) {
	m, grid, valve, _ := valveDiagram(t)

	if err := m.UpdateNode(grid.ID, "main supply", domain.Params{"p_bar": 60.0}); err != nil {
		t.Fatalf("UpdateNode failed: %v", err)
	}
	got, _ := m.Node(grid.ID)
	if got.Label != "main supply" {
		t.Errorf("got label %q", got.Label)
	}
	if v, _ := got.Params.Float("p_bar"); v != 60 {
		t.Errorf("got p_bar %v, want 60", v)
	}

	if err := m.UpdateNode(valve.ID, "v", nil); err != nil {
		t.Fatalf("UpdateNode failed: %v", err)
	}
	got, _ = m.Node(valve.ID)
	if _, ok := got.Params["diameter_m"]; !ok {
		t.Error("expected nil params to keep existing params")
	}

	if err := m.UpdateNode("n99", "x", nil); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
	if err := m.UpdateEdge("e1", domain.Params{"x": 1.0}); !errors.Is(err, ErrConnectorHasParams) {
		t.Errorf("expected ErrConnectorHasParams, got %v", err)
	}
	if err := m.UpdateEdge("e99", nil); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("expected ErrUnknownEdge, got %v", err)
	}
	if err := m.MoveNode(grid.ID, Position{5, 5}); err != nil {
		t.Fatalf("MoveNode failed: %v", err)
	}
	got, _ = m.Node(grid.ID)
	if got.Position != (Position{5, 5}) {
		t.Errorf("got position %+v", got.Position)
	}
}

func TestModelReturnsCopies(t *testing.T) {
	m, grid, _, _ := valveDiagram(t)

	nodes := m.Nodes()
	nodes[0].Params["p_bar"] = 1.0
	nodes[0].Label = "changed"

	got, _ := m.Node(grid.ID)
	if v, _ := got.Params.Float("p_bar"); v != 50 {
		t.Errorf("model params changed through copy: p_bar %v", v)
	}
	if got.Label == "changed" {
		t.Error("model label changed through copy")
	}
}

func TestModelSelection(t *testing.T) {
	m, grid, _, _ := valveDiagram(t)

	if err := m.SelectEdge("e1"); err != nil {
		t.Fatalf("SelectEdge failed: %v", err)
	}
	if err := m.SelectNode(grid.ID); err != nil {
		t.Fatalf("SelectNode failed: %v", err)
	}
	node, edge := m.Selection()
	if node != grid.ID || edge != "" {
		t.Errorf("Selection() = (%q, %q), want (%q, \"\")", node, edge, grid.ID)
	}

	m.ClearSelection()
	if m.DeleteSelected() {
		t.Error("expected nothing deleted without selection")
	}
	if err := m.SelectNode("n99"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}

func TestModelDeleteValveCascades(t *testing.T) {
	m, grid, valve, sink := valveDiagram(t)
	mustConnect(t, m, grid.ID, sink.ID)

	if err := m.SelectNode(valve.ID); err != nil {
		t.Fatal(err)
	}
	if !m.DeleteSelected() {
		t.Fatal("expected selected valve to be deleted")
	}

	for _, e := range m.Edges() {
		if e.Touches(valve.ID) {
			t.Errorf("edge %s still references deleted valve", e.ID)
		}
	}
	if len(m.Edges()) != 1 {
		t.Errorf("expected only the pipe to remain, got %d edges", len(m.Edges()))
	}
	if node, _ := m.Selection(); node != "" {
		t.Error("expected selection cleared")
	}

	net := m.Project("after delete")
	if err := net.Validate(); err != nil {
		t.Errorf("projection has dangling references: %v", err)
	}
	for _, e := range net.Edges {
		if e.Involves(valve.ID) {
			t.Errorf("projected edge %s references deleted valve", e.ID)
		}
	}
}

func TestModelDeleteEdge(t *testing.T) {
	m, _, _, _ := valveDiagram(t)

	if err := m.SelectEdge("e2"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteEdge("e2"); err != nil {
		t.Fatalf("DeleteEdge failed: %v", err)
	}
	if _, ok := m.Edge("e2"); ok {
		t.Error("expected e2 removed")
	}
	if _, edge := m.Selection(); edge != "" {
		t.Error("expected edge selection cleared")
	}
	if err := m.DeleteEdge("e2"); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("expected ErrUnknownEdge, got %v", err)
	}
}

func TestModelLoad(t *testing.T) {
	net := domain.NewNetwork("loaded")
	net.AddNode(*domain.NewNode("n3", domain.NodeKindExternalGrid, 0, 0))
	net.AddNode(*domain.NewNode("n7", domain.NodeKindSink, 100, 0))
	net.AddEdge(*domain.NewEdge("e2", "n3", "n7", domain.EdgeKindValve))
	net.AddEdge(*domain.NewEdge("e5", "n3", "n7", domain.EdgeKindPipe))

	m := NewModel(nil)
	m.SelectTool(Tool(domain.NodeKindPump))
	mustAddNode(t, m, domain.NodeKindJunction, Position{})
	if err := m.Load(*net); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Tool() != ToolNone {
		t.Error("expected tool cleared by load")
	}
	if len(m.Nodes()) != 3 {
		t.Fatalf("expected 2 nodes plus a valve node, got %d", len(m.Nodes()))
	}
	if _, ok := m.Node("n1"); ok {
		t.Error("expected previous diagram replaced")
	}

	n := mustAddNode(t, m, domain.NodeKindJunction, Position{})
	if n.ID != "n8" {
		t.Errorf("first node after load = %q, want n8", n.ID)
	}
	e, err := m.ConnectWith(domain.EdgeKindPipe, "n3", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != "e6" {
		t.Errorf("first edge after load = %q, want e6", e.ID)
	}
}

func TestModelLoadRejectsCanvasKinds(t *testing.T) {
	tests := []struct {
		name string
		net  func() *domain.Network
	}{
		{"connector edge", func() *domain.Network {
			net := domain.NewNetwork("bad")
			net.AddNode(*domain.NewNode("a", domain.NodeKindJunction, 0, 0))
			net.AddNode(*domain.NewNode("b", domain.NodeKindJunction, 0, 0))
			net.AddEdge(domain.Edge{ID: "e1", FromNode: "a", ToNode: "b", Type: domain.EdgeKindConnector})
			return net
		}},
		{"unknown edge kind", func() *domain.Network {
			net := domain.NewNetwork("bad")
			net.AddNode(*domain.NewNode("a", domain.NodeKindJunction, 0, 0))
			net.AddNode(*domain.NewNode("b", domain.NodeKindJunction, 0, 0))
			net.AddEdge(domain.Edge{ID: "e1", FromNode: "a", ToNode: "b", Type: "siphon"})
			return net
		}},
		{"valve node", func() *domain.Network {
			net := domain.NewNetwork("bad")
			net.AddNode(domain.Node{ID: "v1", Type: domain.NodeKindValve})
			return net
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(nil)
			mustAddNode(t, m, domain.NodeKindJunction, Position{})

			err := m.Load(*tt.net())
			if !errors.Is(err, domain.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if len(m.Nodes()) != 1 || len(m.Edges()) != 0 {
				t.Errorf("expected diagram untouched, got %d nodes %d edges", len(m.Nodes()), len(m.Edges()))
			}
			if id := m.Allocator().NodeID(); id != "n2" {
				t.Errorf("expected allocator untouched, got %s", id)
			}
		})
	}
}

func TestModelLoadMovesCountersToLoadedIDs(t *testing.T) {
	m := NewModel(nil)
	for i := 0; i < 5; i++ {
		mustAddNode(t, m, domain.NodeKindJunction, Position{})
	}

	net := domain.NewNetwork("small")
	net.AddNode(*domain.NewNode("n2", domain.NodeKindJunction, 0, 0))
	if err := m.Load(*net); err != nil {
		t.Fatal(err)
	}

	if id := m.Allocator().NodeID(); id != "n3" {
		t.Errorf("expected n3 after loading a smaller diagram, got %s", id)
	}
}
