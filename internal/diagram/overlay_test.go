package diagram

import (
	"reflect"
	"testing"

	"gasnet/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func overlayModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(nil)
	mustAddNode(t, m, domain.NodeKindExternalGrid, Position{}) // n1
	mustAddNode(t, m, domain.NodeKindJunction, Position{})     // n2
	mustAddNode(t, m, domain.NodeKindSink, Position{})         // n3
	return m
}

func TestApplyResultColors(t *testing.T) {
	m := overlayModel(t)
	m.ApplyResult(domain.SimulationResult{
		Success: true,
		Nodes: []domain.NodeResult{
			{ID: "n1", PressureBar: ptr(50.0), Status: ptr(domain.StatusOK)},
			{ID: "n2", PressureBar: ptr(18.5), Status: ptr(domain.StatusPressureTooLow)},
			{ID: "n3", Status: ptr("unconverged")},
			{ID: "n9", Status: ptr(domain.StatusOK)},
		},
	})

	tests := []struct {
		id     string
		status OverlayStatus
		color  string
	}{
		{"n1", OverlayOK, ColorOK},
		{"n2", OverlayLow, ColorLow},
		{"n3", OverlayUnset, ColorUnset},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, _ := m.Node(tt.id)
			if n.Overlay == nil {
				t.Fatal("expected overlay")
			}
			if n.Overlay.Status != tt.status {
				t.Errorf("got status %q, want %q", n.Overlay.Status, tt.status)
			}
			if n.Style.BorderColor != tt.color {
				t.Errorf("got color %q, want %q", n.Style.BorderColor, tt.color)
			}
		})
	}

	n1, _ := m.Node("n1")
	if n1.Overlay.PressureBar == nil || *n1.Overlay.PressureBar != 50.0 {
		t.Errorf("expected pressure 50, got %v", n1.Overlay.PressureBar)
	}
}

func TestApplyResultUnmatchedNodeStaysClear(t *testing.T) {
	m := overlayModel(t)
	m.ApplyResult(domain.SimulationResult{
		Success: true,
		Nodes:   []domain.NodeResult{{ID: "n1", Status: ptr(domain.StatusOK)}},
	})

	n2, _ := m.Node("n2")
	if n2.Overlay != nil || n2.Style.BorderColor != "" {
		t.Errorf("expected n2 without overlay, got %+v %+v", n2.Overlay, n2.Style)
	}
}

func TestApplyResultClearsBeforeReapplying(t *testing.T) {
	low := domain.SimulationResult{
		Success: true,
		Nodes:   []domain.NodeResult{{ID: "n2", PressureBar: ptr(10.0), Status: ptr(domain.StatusPressureTooLow)}},
	}

	tests := []struct {
		name string
		next domain.SimulationResult
	}{
		{"empty success", domain.SimulationResult{Success: true, Nodes: []domain.NodeResult{}}},
		{"failure", domain.SimulationResult{Success: false, Message: "solver diverged", Nodes: low.Nodes}},
		{"other nodes only", domain.SimulationResult{Success: true, Nodes: []domain.NodeResult{{ID: "n1", Status: ptr(domain.StatusOK)}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := overlayModel(t)
			m.ApplyResult(low)
			if n, _ := m.Node("n2"); n.Overlay == nil || n.Overlay.Status != OverlayLow {
				t.Fatal("expected LOW overlay before reapplying")
			}

			m.ApplyResult(tt.next)

			n, _ := m.Node("n2")
			if n.Overlay != nil {
				t.Errorf("expected overlay cleared, got %+v", n.Overlay)
			}
			if n.Style.BorderColor != "" {
				t.Errorf("expected color cleared, got %q", n.Style.BorderColor)
			}
		})
	}
}

func TestApplyResultIdempotent(t *testing.T) {
	res := domain.SimulationResult{
		Success: true,
		Nodes:   []domain.NodeResult{{ID: "n1", PressureBar: ptr(45.2), Status: ptr(domain.StatusOK)}},
	}

	m := overlayModel(t)
	m.ApplyResult(res)
	once := m.Nodes()
	m.ApplyResult(res)
	twice := m.Nodes()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed state:\n%+v\n%+v", once, twice)
	}
	if twice[0].Overlay == nil || *twice[0].Overlay.PressureBar != 45.2 {
		t.Errorf("expected n1 pressure 45.2, got %+v", twice[0].Overlay)
	}
}

func TestApplyResultPure(t *testing.T) {
	nodes := overlayModel(t).Nodes()
	res := domain.SimulationResult{
		Success: true,
		Nodes:   []domain.NodeResult{{ID: "n1", Status: ptr(domain.StatusOK)}},
	}

	out := ApplyResult(nodes, res)

	if out[0].Overlay == nil || out[0].Overlay.Status != OverlayOK {
		t.Errorf("expected OK overlay on copy, got %+v", out[0].Overlay)
	}
	if nodes[0].Overlay != nil {
		t.Error("input nodes were modified")
	}
}

func TestClearOverlay(t *testing.T) {
	m := overlayModel(t)
	m.ApplyResult(domain.SimulationResult{
		Success: true,
		Nodes:   []domain.NodeResult{{ID: "n1", Status: ptr(domain.StatusOK)}},
	})
	m.ClearOverlay()

	for _, n := range m.Nodes() {
		if n.Overlay != nil || n.Style.BorderColor != "" {
			t.Errorf("node %s still has overlay", n.ID)
		}
	}
}
