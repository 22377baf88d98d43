package domain

// Node statuses reported by the solver
const (
	StatusOK             = "OK"
	StatusPressureTooLow = "pressure too low"
)

// NodeResult is the solver output for one node
type NodeResult struct {
	ID          string   `json:"id"`
	PressureBar *float64 `json:"pressure_bar,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// EdgeResult is the solver output for one edge
type EdgeResult struct {
	ID            string   `json:"id"`
	MdotKgPerS    *float64 `json:"mdot_kg_per_s,omitempty"`
	VelocityMPerS *float64 `json:"velocity_m_per_s,omitempty"`
}

// SimulationResult is what the solver returns for a Network
type SimulationResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Nodes   []NodeResult `json:"nodes"`
	Edges   []EdgeResult `json:"edges"`
}

// NodeResultByID returns the result for a node id
func (r *SimulationResult) NodeResultByID(id string) (*NodeResult, bool) {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i], true
		}
	}
	return nil, false
}
