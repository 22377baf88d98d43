package diagram

import "gasnet/internal/domain"

// OverlayStatus classifies a node result for display
type OverlayStatus string

const (
	OverlayOK    OverlayStatus = "OK"
	OverlayLow   OverlayStatus = "LOW"
	OverlayUnset OverlayStatus = "UNSET"
)

// Border colors derived from the overlay status
const (
	ColorOK    = "#28a745"
	ColorLow   = "#dc3545"
	ColorUnset = "#ffc107"
)

// Overlay is the per-node annotation of the last simulation run
type Overlay struct {
	PressureBar *float64      `json:"pressure_bar,omitempty"`
	Status      OverlayStatus `json:"status"`
}

func (o *Overlay) clone() Overlay {
	out := *o
	if o.PressureBar != nil {
		p := *o.PressureBar
		out.PressureBar = &p
	}
	return out
}

// Color returns the border color for the status
func (s OverlayStatus) Color() string {
	switch s {
	case OverlayOK:
		return ColorOK
	case OverlayLow:
		return ColorLow
	default:
		return ColorUnset
	}
}

// StatusFromSolver maps a solver status string onto an overlay status
func StatusFromSolver(status *string) OverlayStatus {
	if status == nil {
		return OverlayUnset
	}
	switch *status {
	case domain.StatusOK:
		return OverlayOK
	case domain.StatusPressureTooLow:
		return OverlayLow
	default:
		return OverlayUnset
	}
}

// ApplyResult replaces the overlay on every node with res. All previous
// overlays and border colors are cleared first, so a failed or empty result
// leaves the diagram uncolored. Results are matched by node id against the
// current diagram.
func (m *Model) ApplyResult(res domain.SimulationResult) {
	for _, n := range m.nodes {
		applyNodeResult(n, res)
	}
}

// ClearOverlay removes every overlay and derived border color
func (m *Model) ClearOverlay() {
	for _, n := range m.nodes {
		n.Overlay = nil
		n.Style.BorderColor = ""
	}
}

// ApplyResult returns copies of nodes overlaid with res, with the same
// semantics as Model.ApplyResult
func ApplyResult(nodes []VisualNode, res domain.SimulationResult) []VisualNode {
	out := make([]VisualNode, 0, len(nodes))
	for i := range nodes {
		n := nodes[i].clone()
		applyNodeResult(&n, res)
		out = append(out, n)
	}
	return out
}

func applyNodeResult(n *VisualNode, res domain.SimulationResult) {
	n.Overlay = nil
	n.Style.BorderColor = ""

	if !res.Success || len(res.Nodes) == 0 {
		return
	}
	r, ok := res.NodeResultByID(n.ID)
	if !ok {
		return
	}

	ov := Overlay{Status: StatusFromSolver(r.Status)}
	if r.PressureBar != nil {
		p := *r.PressureBar
		ov.PressureBar = &p
	}
	n.Overlay = &ov
	n.Style.BorderColor = ov.Status.Color()
}
