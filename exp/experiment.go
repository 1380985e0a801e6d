package exp

import (
	"encoding/json"
	"fmt"
	"os"
)

// Controller and router names understood by the microsimulator bridge.
const (
	ControllerRL      = "RLController"
	RouterGridRecycle = "GridRecycleRouter"
	RouterExpTravel   = "ExpTravelTimeRouter"
)

// AlgRun is the training algorithm handed to the external trainer.
const AlgRun = "PPO"

// Options selects the values that vary between runs. Everything else in
// the experiment is fixed at assembly time.
type Options struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	Horizon    int     `yaml:"horizon"`
	Rollouts   int     `yaml:"rollouts"`
	Workers    int     `yaml:"workers"`
	GPUs       int     `yaml:"gpus"`
	UseInflows bool    `yaml:"use_inflows"`
	EnterSpeed float64 `yaml:"enter_speed"`
}

// DefaultOptions reproduces the reference 3x4 grid run.
func DefaultOptions() Options {
	return Options{
		Rows:       3,
		Cols:       4,
		Horizon:    500,
		Rollouts:   1,
		Workers:    10,
		GPUs:       1,
		UseInflows: true,
		EnterSpeed: 10,
	}
}

// Experiment is the complete, immutable configuration of one multi-agent
// training run. It is built once by New and never mutated afterwards; the
// launcher serializes it verbatim so a run can be replayed.
type Experiment struct {
	Tag       string        `json:"exp_tag" yaml:"exp_tag"`
	EnvName   string        `json:"env_name" yaml:"env_name"`
	Network   string        `json:"network" yaml:"network"`
	Simulator string        `json:"simulator" yaml:"simulator"`
	Sim       SimParams     `json:"sim" yaml:"sim"`
	Env       EnvParams     `json:"env" yaml:"env"`
	Net       NetParams     `json:"net" yaml:"net"`
	Vehicles  VehicleParams `json:"veh" yaml:"veh"`
	Initial   InitialConfig `json:"initial" yaml:"initial"`
	Inflows   []Inflow      `json:"inflows,omitempty" yaml:"inflows,omitempty"`

	MultiAgent MultiAgentConfig `json:"multiagent" yaml:"multiagent"`
	Training   TrainingConfig   `json:"training" yaml:"training"`
}

// numCAVs is the learning-vehicle count, fixed regardless of grid size.
const numCAVs = 2

// New assembles an experiment from options: network geometry, vehicle
// population, environment parameters, inflows, and the per-role policy
// definitions derived from a probe environment. The agent identifier set
// is validated against the policy role prefixes before return.
func New(opts Options) (*Experiment, error) {
	if opts.Rows <= 0 || opts.Cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", opts.Rows, opts.Cols)
	}
	if opts.Horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", opts.Horizon)
	}

	net := NetParams{
		Grid: GridParams{
			RowNum:      opts.Rows,
			ColNum:      opts.Cols,
			InnerLength: 500,
			ShortLength: 500,
			LongLength:  700,
			CarsTop:     1,
			CarsBot:     1,
			CarsLeft:    1,
			CarsRight:   1,
		},
		HorizontalLanes: 3,
		VerticalLanes:   3,
		SpeedLimit:      SpeedLimit{Horizontal: 30, Vertical: 30},
		TrafficLights:   true,
	}

	totCars := net.Grid.TotalCars()
	if totCars <= numCAVs {
		return nil, fmt.Errorf("grid seeds %d vehicles, need more than %d for a human population", totCars, numCAVs)
	}

	var vehs VehicleParams
	vehs.Add(VehicleType{
		ID:                "human",
		NumVehicles:       totCars - numCAVs,
		Color:             "white",
		RoutingController: RouterGridRecycle,
		CarFollowingParams: &CarFollowingParams{
			MinGap:   2.5,
			MaxSpeed: 30,
			Decel:    3.5,
		},
	})
	vehs.Add(VehicleType{
		ID:                "cav",
		NumVehicles:       numCAVs,
		Color:             "red",
		AccelController:   ControllerRL,
		RoutingController: RouterExpTravel,
		LaneChangeParams:  &LaneChangeParams{Mode: "only_strategic_aggressive"},
	})

	var initial InitialConfig
	var inflows []Inflow
	if opts.UseInflows {
		initial, inflows = FlowParams(net, opts.EnterSpeed)
	} else {
		initial, inflows = NonFlowParams(opts.EnterSpeed)
	}

	env := EnvParams{
		Horizon:     opts.Horizon,
		WarmupSteps: 50,
		Additional: AdditionalEnvParams{
			TargetVelocity: 30,
			SwitchTime:     3.0,
			NumObserved:    2,
			Discrete:       true,
			TLType:         "controlled",
			NumLocalEdges:  4,
			NumLocalLights: 4,
			MaxAccel:       3,
			MaxDecel:       3,
		},
	}

	probe, err := NewProbeEnv(net, env, vehs)
	if err != nil {
		return nil, fmt.Errorf("instantiating probe environment: %w", err)
	}
	if err := ValidateAgentIDs(probe.AgentIDs()); err != nil {
		return nil, fmt.Errorf("policy mapping: %w", err)
	}

	ma := MultiAgentConfig{
		Policies: map[Role]PolicyDef{
			RoleCAV: {Class: "PPOTFPolicy", Obs: probe.ObservationSpaceCAV(), Act: probe.ActionSpaceCAV()},
			RoleTL:  {Class: "PPOTFPolicy", Obs: probe.ObservationSpaceTL(), Act: probe.ActionSpaceTL()},
		},
		PoliciesToTrain: []Role{RoleCAV, RoleTL},
	}

	return &Experiment{
		Tag:       fmt.Sprintf("grid_0_%dx%d_multiagent", opts.Rows, opts.Cols),
		EnvName:   "CustomSEUPressEnv",
		Network:   "SingleIntersectionNet",
		Simulator: "traci",
		Sim: SimParams{
			SimStep:         0.1,
			RestartInstance: true,
			EmissionPath:    "data",
		},
		Env:        env,
		Net:        net,
		Vehicles:   vehs,
		Initial:    initial,
		Inflows:    inflows,
		MultiAgent: ma,
		Training:   NewTrainingConfig(opts.Horizon, opts.Rollouts, opts.Workers, opts.GPUs),
	}, nil
}

// GymName is the registered environment name derived from the experiment tag.
func (e *Experiment) GymName() string {
	return e.EnvName + "-v0"
}

// MarshalIndentJSON serializes the experiment for replay.
func (e *Experiment) MarshalIndentJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "    ")
}

// WriteFile writes the serialized experiment to path, overwriting any
// previous artifact.
func (e *Experiment) WriteFile(path string) error {
	data, err := e.MarshalIndentJSON()
	if err != nil {
		return fmt.Errorf("serializing experiment: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing experiment artifact: %w", err)
	}
	return nil
}
