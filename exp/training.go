package exp

// TrainingConfig carries the PPO hyperparameters handed to the external
// trainer. Values are fixed at assembly time; the trainer owns everything
// past this surface (rollout scheduling, optimization, retries).
type TrainingConfig struct {
	NumGPUs        int     `json:"num_gpus" yaml:"num_gpus"`
	NumWorkers     int     `json:"num_workers" yaml:"num_workers"`
	TrainBatchSize int     `json:"train_batch_size" yaml:"train_batch_size"`
	Gamma          float64 `json:"gamma" yaml:"gamma"` // discount rate
	FCNetHiddens   []int   `json:"fcnet_hiddens" yaml:"fcnet_hiddens"`
	UseGAE         bool    `json:"use_gae" yaml:"use_gae"`
	Lambda         float64 `json:"lambda" yaml:"lambda"`
	KLTarget       float64 `json:"kl_target" yaml:"kl_target"`
	NumSGDIter     int     `json:"num_sgd_iter" yaml:"num_sgd_iter"`
	ClipActions    bool    `json:"clip_actions" yaml:"clip_actions"`
	Horizon        int     `json:"horizon" yaml:"horizon"`
}

// NewTrainingConfig returns the PPO configuration for a run with the given
// episode horizon and rollout/worker counts.
func NewTrainingConfig(horizon, rollouts, workers, gpus int) TrainingConfig {
	return TrainingConfig{
		NumGPUs:        gpus,
		NumWorkers:     workers,
		TrainBatchSize: horizon * rollouts,
		Gamma:          0.999,
		FCNetHiddens:   []int{3, 3},
		UseGAE:         true,
		Lambda:         0.97,
		KLTarget:       0.02,
		NumSGDIter:     10,
		ClipActions:    false,
		Horizon:        horizon,
	}
}

// MultiAgentConfig binds each role to its policy and marks which policies
// the trainer updates.
type MultiAgentConfig struct {
	Policies        map[Role]PolicyDef `json:"policies" yaml:"policies"`
	PoliciesToTrain []Role             `json:"policies_to_train" yaml:"policies_to_train"`
}

// StopConfig is the trainer's stopping criterion.
type StopConfig struct {
	TrainingIteration int `json:"training_iteration" yaml:"training_iteration"`
}

// LaunchConfig groups the outer trial settings: stopping criterion,
// checkpoint cadence and the failure budget the external launcher grants
// the trial.
type LaunchConfig struct {
	Stop            StopConfig `json:"stop" yaml:"stop"`
	CheckpointFreq  int        `json:"checkpoint_freq" yaml:"checkpoint_freq"`
	CheckpointAtEnd bool       `json:"checkpoint_at_end" yaml:"checkpoint_at_end"`
	MaxFailures     int        `json:"max_failures" yaml:"max_failures"`
}

// NewLaunchConfig returns launch settings with the given iteration ceiling
// and checkpoint cadence.
func NewLaunchConfig(iterations, checkpointFreq int) LaunchConfig {
	return LaunchConfig{
		Stop:            StopConfig{TrainingIteration: iterations},
		CheckpointFreq:  checkpointFreq,
		CheckpointAtEnd: true,
		MaxFailures:     999,
	}
}
