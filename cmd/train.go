package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seu-flow/gridflow/exp"
)

var (
	trainLogLevel    string // Log verbosity level
	trainOptionsFile string // Optional YAML options file
	trainRows        int    // Grid rows
	trainCols        int    // Grid columns
	trainHorizon     int    // Episode horizon in steps
	trainRollouts    int    // Rollouts per training batch
	trainWorkers     int    // Rollout worker count
	trainGPUs        int    // GPU count
	trainIterations  int    // Training iteration ceiling
	trainCkptFreq    int    // Checkpoint cadence in iterations
	trainEndpoint    string // Trainer head endpoint
	trainDryRun      bool   // Assemble and write the experiment without submitting
)

// trainCmd assembles the experiment configuration and submits it
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Assemble a two-role grid experiment and submit it to the trainer",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(trainLogLevel)

		opts := exp.DefaultOptions()
		if trainOptionsFile != "" {
			var err error
			if opts, err = exp.LoadOptions(trainOptionsFile); err != nil {
				logrus.Fatalf("Invalid options file: %v", err)
			}
		}
		if cmd.Flags().Changed("rows") {
			opts.Rows = trainRows
		}
		if cmd.Flags().Changed("cols") {
			opts.Cols = trainCols
		}
		if cmd.Flags().Changed("horizon") {
			opts.Horizon = trainHorizon
		}
		if cmd.Flags().Changed("rollouts") {
			opts.Rollouts = trainRollouts
		}
		if cmd.Flags().Changed("workers") {
			opts.Workers = trainWorkers
		}
		if cmd.Flags().Changed("gpus") {
			opts.GPUs = trainGPUs
		}

		experiment, err := exp.New(opts)
		if err != nil {
			logrus.Fatalf("Assembling experiment: %v", err)
		}
		logrus.Infof("Assembled experiment %s: %dx%d grid, %d vehicles, horizon=%d",
			experiment.Tag, opts.Rows, opts.Cols, experiment.Vehicles.Total(), opts.Horizon)

		if trainDryRun {
			out := experiment.Tag + ".json"
			if err := experiment.WriteFile(out); err != nil {
				logrus.Fatalf("Writing experiment artifact: %v", err)
			}
			logrus.Infof("Dry run: wrote %s", out)
			return
		}

		sub, err := exp.NewSubmission(experiment, exp.NewLaunchConfig(trainIterations, trainCkptFreq))
		if err != nil {
			logrus.Fatalf("Building submission: %v", err)
		}
		launcher := exp.NewHTTPLauncher(trainEndpoint)
		if err := launcher.Submit(context.Background(), sub); err != nil {
			logrus.Fatalf("Submitting experiment: %v", err)
		}
		logrus.Infof("Submitted %s to %s.", experiment.Tag, trainEndpoint)
	},
}

func init() {
	trainCmd.Flags().StringVar(&trainLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	trainCmd.Flags().StringVar(&trainOptionsFile, "options", "", "YAML options file (flags override)")

	trainCmd.Flags().IntVar(&trainRows, "rows", 3, "Grid rows")
	trainCmd.Flags().IntVar(&trainCols, "cols", 4, "Grid columns")
	trainCmd.Flags().IntVar(&trainHorizon, "horizon", 500, "Episode horizon in steps")
	trainCmd.Flags().IntVar(&trainRollouts, "rollouts", 1, "Rollouts per training batch")
	trainCmd.Flags().IntVar(&trainWorkers, "workers", 10, "Rollout worker count")
	trainCmd.Flags().IntVar(&trainGPUs, "gpus", 1, "GPU count")

	trainCmd.Flags().IntVar(&trainIterations, "iterations", 1000, "Training iteration ceiling")
	trainCmd.Flags().IntVar(&trainCkptFreq, "checkpoint-freq", 20, "Checkpoint cadence in iterations")
	trainCmd.Flags().StringVar(&trainEndpoint, "endpoint", "http://127.0.0.1:8265", "Trainer head endpoint")
	trainCmd.Flags().BoolVar(&trainDryRun, "dry-run", false, "Assemble and write the experiment without submitting")

	rootCmd.AddCommand(trainCmd)
}
