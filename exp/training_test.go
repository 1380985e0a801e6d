package exp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTrainingConfig_FieldEquivalence(t *testing.T) {
	got := NewTrainingConfig(500, 1, 10, 1)
	want := TrainingConfig{
		NumGPUs:        1,
		NumWorkers:     10,
		TrainBatchSize: 500,
		Gamma:          0.999,
		FCNetHiddens:   []int{3, 3},
		UseGAE:         true,
		Lambda:         0.97,
		KLTarget:       0.02,
		NumSGDIter:     10,
		ClipActions:    false,
		Horizon:        500,
	}
	assert.Equal(t, want, got)
}

func TestNewTrainingConfig_BatchSizeScalesWithRollouts(t *testing.T) {
	got := NewTrainingConfig(500, 4, 10, 1)
	assert.Equal(t, 2000, got.TrainBatchSize)
}

func TestNewLaunchConfig_FieldEquivalence(t *testing.T) {
	got := NewLaunchConfig(1000, 20)
	want := LaunchConfig{
		Stop:            StopConfig{TrainingIteration: 1000},
		CheckpointFreq:  20,
		CheckpointAtEnd: true,
		MaxFailures:     999,
	}
	assert.Equal(t, want, got)
}
