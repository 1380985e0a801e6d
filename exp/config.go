package exp

import "fmt"

// GridParams describes the traffic light grid array geometry.
type GridParams struct {
	RowNum      int     `json:"row_num" yaml:"row_num"`           // number of horizontal rows of edges
	ColNum      int     `json:"col_num" yaml:"col_num"`           // number of vertical columns of edges
	InnerLength float64 `json:"inner_length" yaml:"inner_length"` // length of inner edges (m)
	ShortLength float64 `json:"short_length" yaml:"short_length"` // length of edges where vehicles enter
	LongLength  float64 `json:"long_length" yaml:"long_length"`   // length of edges where vehicles exit
	CarsTop     int     `json:"cars_top" yaml:"cars_top"`         // cars starting per edge heading to the top
	CarsBot     int     `json:"cars_bot" yaml:"cars_bot"`         // cars starting per edge heading to the bottom
	CarsLeft    int     `json:"cars_left" yaml:"cars_left"`       // cars starting per edge heading to the left
	CarsRight   int     `json:"cars_right" yaml:"cars_right"`     // cars starting per edge heading to the right
}

// TotalCars returns the number of vehicles seeded on the entry edges,
// derived from the grid dimensions.
func (g GridParams) TotalCars() int {
	return (g.CarsLeft+g.CarsRight)*g.ColNum + (g.CarsTop+g.CarsBot)*g.RowNum
}

// SpeedLimit holds per-direction speed limits (m/s).
type SpeedLimit struct {
	Horizontal float64 `json:"horizontal" yaml:"horizontal"`
	Vertical   float64 `json:"vertical" yaml:"vertical"`
}

// NetParams describes the road network: the grid array plus lane counts,
// speed limits and traffic light presence.
type NetParams struct {
	Grid            GridParams `json:"grid_array" yaml:"grid_array"`
	HorizontalLanes int        `json:"horizontal_lanes" yaml:"horizontal_lanes"`
	VerticalLanes   int        `json:"vertical_lanes" yaml:"vertical_lanes"`
	SpeedLimit      SpeedLimit `json:"speed_limit" yaml:"speed_limit"`
	TrafficLights   bool       `json:"traffic_lights" yaml:"traffic_lights"`
}

// CarFollowingParams groups the fixed car-following behavior of a vehicle type.
type CarFollowingParams struct {
	MinGap   float64 `json:"min_gap" yaml:"min_gap"`     // minimum bumper-to-bumper gap (m)
	MaxSpeed float64 `json:"max_speed" yaml:"max_speed"` // speed ceiling (m/s)
	Decel    float64 `json:"decel" yaml:"decel"`         // comfortable deceleration (m/s^2)
}

// LaneChangeParams groups lane-change behavior of a vehicle type.
type LaneChangeParams struct {
	Mode string `json:"lane_change_mode" yaml:"lane_change_mode"`
}

// VehicleType is one role in the vehicle population, fixed at construction time.
type VehicleType struct {
	ID                 string              `json:"veh_id" yaml:"veh_id"`
	NumVehicles        int                 `json:"num_vehicles" yaml:"num_vehicles"`
	Color              string              `json:"color" yaml:"color"`
	AccelController    string              `json:"acceleration_controller,omitempty" yaml:"acceleration_controller,omitempty"`
	RoutingController  string              `json:"routing_controller,omitempty" yaml:"routing_controller,omitempty"`
	CarFollowingParams *CarFollowingParams `json:"car_following_params,omitempty" yaml:"car_following_params,omitempty"`
	LaneChangeParams   *LaneChangeParams   `json:"lane_change_params,omitempty" yaml:"lane_change_params,omitempty"`
}

// VehicleParams is the ordered vehicle population of an experiment.
type VehicleParams struct {
	Types []VehicleType `json:"types" yaml:"types"`
}

// Add appends a vehicle type to the population.
func (v *VehicleParams) Add(t VehicleType) {
	v.Types = append(v.Types, t)
}

// Total returns the population size across all vehicle types.
func (v VehicleParams) Total() int {
	n := 0
	for _, t := range v.Types {
		n += t.NumVehicles
	}
	return n
}

// Type returns the vehicle type with the given id.
func (v VehicleParams) Type(id string) (VehicleType, error) {
	for _, t := range v.Types {
		if t.ID == id {
			return t, nil
		}
	}
	return VehicleType{}, fmt.Errorf("no vehicle type %q in population", id)
}

// SimParams groups microsimulator backend settings.
type SimParams struct {
	SimStep         float64 `json:"sim_step" yaml:"sim_step"` // simulation step size (s)
	RestartInstance bool    `json:"restart_instance" yaml:"restart_instance"`
	Render          bool    `json:"render" yaml:"render"`
	EmissionPath    string  `json:"emission_path,omitempty" yaml:"emission_path,omitempty"`
	PrintWarnings   bool    `json:"print_warnings" yaml:"print_warnings"`
}

// AdditionalEnvParams is the environment-specific parameter block consumed by
// the multi-agent grid environment.
type AdditionalEnvParams struct {
	TargetVelocity float64 `json:"target_velocity" yaml:"target_velocity"`
	SwitchTime     float64 `json:"switch_time" yaml:"switch_time"` // minimum time between light switches (s)
	NumObserved    int     `json:"num_observed" yaml:"num_observed"`
	Discrete       bool    `json:"discrete" yaml:"discrete"`
	TLType         string  `json:"tl_type" yaml:"tl_type"`
	NumLocalEdges  int     `json:"num_local_edges" yaml:"num_local_edges"`
	NumLocalLights int     `json:"num_local_lights" yaml:"num_local_lights"`
	MaxAccel       float64 `json:"max_accel" yaml:"max_accel"`
	MaxDecel       float64 `json:"max_decel" yaml:"max_decel"`
}

// EnvParams groups episode-level environment settings.
type EnvParams struct {
	Horizon     int                 `json:"horizon" yaml:"horizon"`
	WarmupSteps int                 `json:"warmup_steps" yaml:"warmup_steps"`
	Evaluate    bool                `json:"evaluate" yaml:"evaluate"`
	Additional  AdditionalEnvParams `json:"additional_params" yaml:"additional_params"`
}

// InitialConfig describes how vehicles are placed at episode start.
type InitialConfig struct {
	Spacing    string  `json:"spacing" yaml:"spacing"`
	EnterSpeed float64 `json:"enter_speed,omitempty" yaml:"enter_speed,omitempty"`
	Shuffle    bool    `json:"shuffle" yaml:"shuffle"`
}
