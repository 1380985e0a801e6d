package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seu-flow/gridflow/progress"
)

var (
	plotLogLevel    string // Log verbosity level
	plotResultsRoot string // Base path the result directories live under
)

// plotCmd renders reward curves for trainer result directories
var plotCmd = &cobra.Command{
	Use:   "plot [DIR...]",
	Short: "Render reward curve PNGs from progress logs",
	Long: `Render reward curve PNGs next to each directory's progress.csv.

Directories whose path contains the multi-policy marker get the per-role
plot set (overall, cav, traffic light); others get the overall plot only.
With no arguments the built-in result directory list is processed.`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(plotLogLevel)

		dirs := args
		if len(dirs) == 0 {
			dirs = progress.DefaultDirs
		}

		if err := progress.PlotAll(plotResultsRoot, dirs); err != nil {
			logrus.Fatalf("Plotting failed: %v", err)
		}
		logrus.Infof("Plotted %d directories.", len(dirs))
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	plotCmd.Flags().StringVar(&plotResultsRoot, "results-root", ".", "Base path for result directories")

	rootCmd.AddCommand(plotCmd)
}
