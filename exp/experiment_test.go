package exp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridParams_TotalCars(t *testing.T) {
	g := GridParams{RowNum: 3, ColNum: 4, CarsTop: 1, CarsBot: 1, CarsLeft: 1, CarsRight: 1}
	// (left+right)*cols + (top+bot)*rows
	assert.Equal(t, 14, g.TotalCars())
}

func TestNew_VehiclePopulationInvariant(t *testing.T) {
	// human + cav must equal the grid-derived total, cav fixed at 2
	// regardless of grid size
	for _, tc := range []struct{ rows, cols int }{
		{1, 1}, {1, 6}, {3, 4}, {5, 5},
	} {
		opts := DefaultOptions()
		opts.Rows, opts.Cols = tc.rows, tc.cols
		e, err := New(opts)
		require.NoError(t, err, "grid %dx%d", tc.rows, tc.cols)

		tot := e.Net.Grid.TotalCars()
		human, err := e.Vehicles.Type("human")
		require.NoError(t, err)
		cav, err := e.Vehicles.Type("cav")
		require.NoError(t, err)

		assert.Equal(t, 2, cav.NumVehicles, "grid %dx%d", tc.rows, tc.cols)
		assert.Equal(t, tot, human.NumVehicles+cav.NumVehicles, "grid %dx%d", tc.rows, tc.cols)
		assert.Equal(t, tot, e.Vehicles.Total(), "grid %dx%d", tc.rows, tc.cols)
	}
}

func TestNew_DefaultsMatchReferenceRun(t *testing.T) {
	e, err := New(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "grid_0_3x4_multiagent", e.Tag)
	assert.Equal(t, "traci", e.Simulator)
	assert.Equal(t, 0.1, e.Sim.SimStep)
	assert.Equal(t, 500, e.Env.Horizon)
	assert.Equal(t, 50, e.Env.WarmupSteps)
	assert.Equal(t, "controlled", e.Env.Additional.TLType)
	assert.Equal(t, 3, e.Net.HorizontalLanes)
	assert.Equal(t, SpeedLimit{Horizontal: 30, Vertical: 30}, e.Net.SpeedLimit)
	assert.True(t, e.Net.TrafficLights)

	human, err := e.Vehicles.Type("human")
	require.NoError(t, err)
	assert.Equal(t, "white", human.Color)
	require.NotNil(t, human.CarFollowingParams)
	assert.Equal(t, CarFollowingParams{MinGap: 2.5, MaxSpeed: 30, Decel: 3.5}, *human.CarFollowingParams)

	cav, err := e.Vehicles.Type("cav")
	require.NoError(t, err)
	assert.Equal(t, ControllerRL, cav.AccelController)
	assert.Equal(t, RouterExpTravel, cav.RoutingController)
	require.NotNil(t, cav.LaneChangeParams)
	assert.Equal(t, "only_strategic_aggressive", cav.LaneChangeParams.Mode)
}

func TestNew_PolicyBindings(t *testing.T) {
	e, err := New(DefaultOptions())
	require.NoError(t, err)

	require.Len(t, e.MultiAgent.Policies, 2)
	assert.ElementsMatch(t, []Role{RoleCAV, RoleTL}, e.MultiAgent.PoliciesToTrain)

	cav := e.MultiAgent.Policies[RoleCAV]
	assert.Equal(t, SpaceBox, cav.Obs.Kind)
	assert.Equal(t, SpaceBox, cav.Act.Kind)
	assert.Equal(t, -3.0, cav.Act.Low)
	assert.Equal(t, 3.0, cav.Act.High)

	tl := e.MultiAgent.Policies[RoleTL]
	assert.Equal(t, SpaceBox, tl.Obs.Kind)
	assert.Equal(t, SpaceDiscrete, tl.Act.Kind)
	assert.Equal(t, 2, tl.Act.N)
}

func TestNew_InflowsCoverEntryEdges(t *testing.T) {
	e, err := New(DefaultOptions())
	require.NoError(t, err)

	// two streams per column and two per row
	assert.Len(t, e.Inflows, 2*4+2*3)
	for _, in := range e.Inflows {
		assert.Equal(t, "human", in.VehType)
		assert.Greater(t, in.VehsPerHour, 0.0)
	}
}

func TestNew_NoInflowsPath(t *testing.T) {
	opts := DefaultOptions()
	opts.UseInflows = false
	e, err := New(opts)
	require.NoError(t, err)

	assert.Empty(t, e.Inflows)
	assert.Equal(t, 10.0, e.Initial.EnterSpeed)
	assert.Equal(t, "uniform", e.Initial.Spacing)
}

func TestNew_RejectsBadGeometry(t *testing.T) {
	opts := DefaultOptions()
	opts.Rows = 0
	_, err := New(opts)
	assert.Error(t, err)
}

func TestExperiment_WriteFile_RoundTrips(t *testing.T) {
	e, err := New(DefaultOptions())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), e.Tag+".json")
	require.NoError(t, e.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Experiment
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, e.Tag, got.Tag)
	assert.Equal(t, e.Net, got.Net)
	assert.Equal(t, e.Training, got.Training)
}
