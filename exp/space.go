package exp

import "fmt"

// SpaceKind discriminates box (continuous) from discrete spaces.
type SpaceKind string

const (
	SpaceBox      SpaceKind = "box"
	SpaceDiscrete SpaceKind = "discrete"
)

// Space tells the kind, shape and bounds of an observation or action in
// the environment.
type Space struct {
	Kind  SpaceKind `json:"kind" yaml:"kind"`
	Shape []int     `json:"shape,omitempty" yaml:"shape,omitempty"`
	Low   float64   `json:"low,omitempty" yaml:"low,omitempty"`
	High  float64   `json:"high,omitempty" yaml:"high,omitempty"`
	N     int       `json:"n,omitempty" yaml:"n,omitempty"` // discrete cardinality
}

// NewBox constructs a continuous space with uniform bounds.
func NewBox(dim int, low, high float64) Space {
	return Space{Kind: SpaceBox, Shape: []int{dim}, Low: low, High: high}
}

// NewDiscrete constructs a discrete space with n choices.
func NewDiscrete(n int) Space {
	return Space{Kind: SpaceDiscrete, N: n}
}

// Dim returns the flattened size of the space.
func (s Space) Dim() int {
	if s.Kind == SpaceDiscrete {
		return s.N
	}
	d := 1
	for _, n := range s.Shape {
		d *= n
	}
	return d
}

// PolicyDef binds one role's observation/action space pair to a policy
// class. Mirrors the (policy class, obs space, act space, config) tuple
// the trainer expects per policy.
type PolicyDef struct {
	Class string `json:"class" yaml:"class"`
	Obs   Space  `json:"observation_space" yaml:"observation_space"`
	Act   Space  `json:"action_space" yaml:"action_space"`
}

// ProbeEnv is a lightweight instantiation of the multi-agent grid
// environment used only to derive per-role spaces and the agent
// identifier set. It runs no simulation.
type ProbeEnv struct {
	net NetParams
	env EnvParams
	veh VehicleParams
}

// NewProbeEnv instantiates a probe environment from assembled parameters.
func NewProbeEnv(net NetParams, env EnvParams, veh VehicleParams) (*ProbeEnv, error) {
	if net.Grid.RowNum <= 0 || net.Grid.ColNum <= 0 {
		return nil, fmt.Errorf("grid must have positive dimensions, got %dx%d", net.Grid.RowNum, net.Grid.ColNum)
	}
	if env.Additional.NumObserved <= 0 {
		return nil, fmt.Errorf("num_observed must be positive, got %d", env.Additional.NumObserved)
	}
	return &ProbeEnv{net: net, env: env, veh: veh}, nil
}

// NumIntersections returns the number of signalized intersections.
func (p *ProbeEnv) NumIntersections() int {
	return p.net.Grid.RowNum * p.net.Grid.ColNum
}

// ObservationSpaceCAV is the per-vehicle observation: own speed and edge
// position, speed and headway for each observed leader, and the state of
// each local light.
func (p *ProbeEnv) ObservationSpaceCAV() Space {
	a := p.env.Additional
	dim := 2 + 2*a.NumObserved + a.NumLocalLights
	return NewBox(dim, 0, 1)
}

// ActionSpaceCAV is the bounded acceleration command.
func (p *ProbeEnv) ActionSpaceCAV() Space {
	a := p.env.Additional
	return NewBox(1, -a.MaxDecel, a.MaxAccel)
}

// ObservationSpaceTL is the per-intersection observation: for each local
// light, per-approach queue state for the observed vehicles plus the
// current phase and time since last switch.
func (p *ProbeEnv) ObservationSpaceTL() Space {
	a := p.env.Additional
	dim := a.NumLocalLights * (a.NumLocalEdges*a.NumObserved + 2)
	return NewBox(dim, 0, 1)
}

// ActionSpaceTL is the phase command: binary switch/hold when discrete,
// otherwise a continuous switch signal.
func (p *ProbeEnv) ActionSpaceTL() Space {
	if p.env.Additional.Discrete {
		return NewDiscrete(2)
	}
	return NewBox(1, -1, 1)
}

// AgentIDs enumerates the identifiers the environment produces: one per
// learning vehicle and one per signalized intersection.
func (p *ProbeEnv) AgentIDs() []string {
	var ids []string
	for _, t := range p.veh.Types {
		if t.AccelController != ControllerRL {
			continue
		}
		for i := 0; i < t.NumVehicles; i++ {
			ids = append(ids, fmt.Sprintf("%s_%d", t.ID, i))
		}
	}
	for i := 0; i < p.NumIntersections(); i++ {
		ids = append(ids, fmt.Sprintf("center%d", i))
	}
	return ids
}
