package exp

import "fmt"

// Inflow is a continuous vehicle stream bound to one entry edge.
type Inflow struct {
	Edge        string  `json:"edge" yaml:"edge"`
	VehType     string  `json:"vtype" yaml:"vtype"`
	VehsPerHour float64 `json:"vehs_per_hour" yaml:"vehs_per_hour"`
	DepartLane  string  `json:"depart_lane" yaml:"depart_lane"`
	DepartSpeed float64 `json:"depart_speed" yaml:"depart_speed"`
}

// baseInflowRate is the per-lane hourly demand applied to every entry edge.
const baseInflowRate = 300.0

// FlowParams derives the inflow set and initial placement for a grid
// network. Entry edges follow the grid naming convention: traffic enters
// rightward on "left<rows>_<col>", leftward on "right0_<col>", upward on
// "bot<row>_0" and downward on "top<row>_<cols>".
func FlowParams(net NetParams, enterSpeed float64) (InitialConfig, []Inflow) {
	g := net.Grid
	var inflows []Inflow

	add := func(edge string, lanes int) {
		inflows = append(inflows, Inflow{
			Edge:        edge,
			VehType:     "human",
			VehsPerHour: baseInflowRate * float64(lanes),
			DepartLane:  "free",
			DepartSpeed: enterSpeed,
		})
	}

	for col := 0; col < g.ColNum; col++ {
		add(fmt.Sprintf("left%d_%d", g.RowNum, col), net.VerticalLanes)
		add(fmt.Sprintf("right0_%d", col), net.VerticalLanes)
	}
	for row := 0; row < g.RowNum; row++ {
		add(fmt.Sprintf("bot%d_0", row), net.HorizontalLanes)
		add(fmt.Sprintf("top%d_%d", row, g.ColNum), net.HorizontalLanes)
	}

	initial := InitialConfig{Spacing: "custom", Shuffle: true}
	return initial, inflows
}

// NonFlowParams is the closed-network alternative: no inflows, vehicles
// start uniformly spaced at the given enter speed.
func NonFlowParams(enterSpeed float64) (InitialConfig, []Inflow) {
	return InitialConfig{Spacing: "uniform", EnterSpeed: enterSpeed}, nil
}
