package domain

import "maps"

// Params holds kind-specific scalar parameters
type Params map[string]any

// Clone returns a shallow copy; a nil receiver yields an empty map
func (p Params) Clone() Params {
	if p == nil {
		return make(Params)
	}
	return maps.Clone(p)
}

// WithDefaults returns a copy of p where every key missing from p is taken
// from defaults. Keys present in p are never overwritten, even with nil.
func (p Params) WithDefaults(defaults Params) Params {
	out := p.Clone()
	for k, v := range defaults {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Float returns the param as float64, accepting any JSON/YAML numeric form
func (p Params) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns the param as bool
func (p Params) Bool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

// DefaultNodeParams returns the palette defaults for a node kind.
// Kinds without defaults yield an empty map.
func DefaultNodeParams(kind NodeKind) Params {
	switch kind {
	case NodeKindExternalGrid:
		return Params{"p_bar": 50.0, "t_k": 293.15}
	case NodeKindSource:
		return Params{"mdot_kg_per_s": 1.0}
	case NodeKindSink:
		return Params{"demand_kg_per_s": 1.0, "p_min_bar": 20.0}
	case NodeKindPump:
		return Params{"pressure_ratio": 1.5, "eta": 0.8}
	case NodeKindValve:
		return ValveParams()
	default:
		return Params{}
	}
}

// DefaultEdgeParams returns the canonical params for an edge kind.
// Connectors carry no params.
func DefaultEdgeParams(kind EdgeKind) Params {
	switch kind {
	case EdgeKindPipe:
		return Params{"length_m": 1000.0, "diameter_m": 0.1, "roughness_m": 1e-5, "in_service": true}
	case EdgeKindValve:
		return ValveParams()
	case EdgeKindFlowControl:
		return Params{"controlled_mdot_kg_per_s": 1.0, "diameter_m": 0.1, "control_active": true}
	case EdgeKindPressureControl:
		return Params{"controlled_p_bar": 1.0, "diameter_m": 0.1, "control_active": true}
	case EdgeKindCompressor:
		return Params{"pressure_ratio": 1.5}
	case EdgeKindHeatExchanger:
		return Params{"diameter_m": 0.1, "qext_w": 0.0}
	default:
		return Params{}
	}
}

// ValveParams returns the default valve params, shared by the valve node
// on the canvas and the valve edge in a Network
func ValveParams() Params {
	return Params{"diameter_m": 0.05, "opened": true, "loss_coefficient": 0.0}
}
