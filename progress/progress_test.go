package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const singlePolicyLog = `training_iteration,episode_reward_mean,episode_reward_min,episode_reward_max
1,0.1,0.05,0.2
2,0.2,0.1,0.3
3,0.3,0.2,0.4
`

const multiPolicyLog = `training_iteration,episode_reward_mean,episode_reward_min,episode_reward_max,policy_reward_mean/cav,policy_reward_min/cav,policy_reward_max/cav,policy_reward_mean/tl,policy_reward_min/tl,policy_reward_max/tl
1,0.1,0.05,0.2,0.5,0.4,0.6,-0.4,-0.5,-0.3
2,0.2,0.1,0.3,0.6,0.5,0.7,-0.3,-0.4,-0.2
`

func TestLoad_SinglePolicy(t *testing.T) {
	path := writeLog(t, t.TempDir(), singlePolicyLog)

	log, err := Load(path)
	require.NoError(t, err)

	require.Len(t, log.Rows, 3)
	assert.Empty(t, log.PolicyNames)
	assert.Equal(t, []float64{1, 2, 3}, log.Iterations())
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, log.RewardMeans())
	assert.Equal(t, 0.05, log.Rows[0].RewardMin)
	assert.Equal(t, 0.4, log.Rows[2].RewardMax)
}

func TestLoad_MultiPolicy(t *testing.T) {
	path := writeLog(t, t.TempDir(), multiPolicyLog)

	log, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"cav", "tl"}, log.PolicyNames)
	assert.True(t, log.HasPolicy("cav"))
	assert.False(t, log.HasPolicy("human"))

	cav, err := log.PolicyMeans("cav")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6}, cav)

	tl, err := log.PolicyMeans("tl")
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.4, -0.3}, tl)

	_, err = log.PolicyMeans("human")
	assert.Error(t, err)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	path := writeLog(t, t.TempDir(), "training_iteration,episode_reward_mean\n1,0.1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColRewardMin)
}

func TestLoad_PartialPolicyColumns(t *testing.T) {
	content := `training_iteration,episode_reward_mean,episode_reward_min,episode_reward_max,policy_reward_mean/cav
1,0.1,0.05,0.2,0.5
`
	path := writeLog(t, t.TempDir(), content)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial per-policy columns")
}

func TestLoad_NonIncreasingIteration(t *testing.T) {
	content := `training_iteration,episode_reward_mean,episode_reward_min,episode_reward_max
1,0.1,0.05,0.2
3,0.2,0.1,0.3
3,0.3,0.2,0.4
`
	path := writeLog(t, t.TempDir(), content)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not increasing")
}

func TestLoad_MalformedValue(t *testing.T) {
	content := `training_iteration,episode_reward_mean,episode_reward_min,episode_reward_max
1,abc,0.05,0.2
`
	path := writeLog(t, t.TempDir(), content)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeLog(t, t.TempDir(), "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	rows := []Row{
		{Iteration: 1, RewardMean: 0.1, RewardMin: 0.05, RewardMax: 0.2,
			Policies: map[string]PolicyStats{
				"cav": {Mean: 0.5, Min: 0.4, Max: 0.6},
				"tl":  {Mean: -0.4, Min: -0.5, Max: -0.3},
			}},
		{Iteration: 2, RewardMean: 0.2, RewardMin: 0.1, RewardMax: 0.3,
			Policies: map[string]PolicyStats{
				"cav": {Mean: 0.6, Min: 0.5, Max: 0.7},
				"tl":  {Mean: -0.3, Min: -0.4, Max: -0.2},
			}},
	}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, rows, []string{"cav", "tl"}))

	log, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cav", "tl"}, log.PolicyNames)
	require.Len(t, log.Rows, 2)
	assert.Equal(t, rows[0], log.Rows[0])
	assert.Equal(t, rows[1], log.Rows[1])
}

func TestSave_MissingPolicyStats(t *testing.T) {
	rows := []Row{{Iteration: 1, RewardMean: 0.1}}
	err := Save(filepath.Join(t.TempDir(), FileName), rows, []string{"cav"})
	assert.Error(t, err)
}
