package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ExpTag is the fixed experiment tag suffixed onto every plot file name.
const ExpTag = "fixed_time_ppo"

// MultiPolicyMarker selects the per-role plot set: directories whose path
// contains it hold multi-policy runs.
const MultiPolicyMarker = "PO"

// Canvas size, 6 x 4.8 inches at 100 dpi.
const (
	plotWidth  = 600
	plotHeight = 480
)

var curveColor = drawing.Color{B: 255, A: 255}

// renderLine draws one reward curve against iteration number and writes it
// as a PNG, overwriting any existing file.
func renderLine(xs, ys []float64, yLabel, outPath string) error {
	graph := chart.Chart{
		Width:  plotWidth,
		Height: plotHeight,
		XAxis:  chart.XAxis{Name: "number of iterations"},
		YAxis:  chart.YAxis{Name: yLabel},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: curveColor, StrokeWidth: 1.5},
			},
		},
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(outPath), err)
	}
	return nil
}

// PlotOverall renders the overall episode reward curve for one result
// directory as all_<ExpTag>.png.
func PlotOverall(dir string) error {
	log, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return err
	}
	out := filepath.Join(dir, "all_"+ExpTag+".png")
	if err := renderLine(log.Iterations(), log.RewardMeans(), "reward", out); err != nil {
		return err
	}
	logrus.Debugf("wrote %s", out)
	return nil
}

// PlotPerRole renders the overall curve plus one curve per agent role:
// all_<ExpTag>.png, icv_<ExpTag>.png (cav policy) and tl_<ExpTag>.png.
func PlotPerRole(dir string) error {
	log, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return err
	}

	plots := []struct {
		prefix string
		policy string
		yLabel string
	}{
		{"all_", "", "reward"},
		{"icv_", "cav", "icv_reward"},
		{"tl_", "tl", "tl_reward"},
	}
	for _, p := range plots {
		ys := log.RewardMeans()
		if p.policy != "" {
			if ys, err = log.PolicyMeans(p.policy); err != nil {
				return err
			}
		}
		out := filepath.Join(dir, p.prefix+ExpTag+".png")
		if err := renderLine(log.Iterations(), ys, p.yLabel, out); err != nil {
			return err
		}
		logrus.Debugf("wrote %s", out)
	}
	return nil
}

// PlotDir plots one result directory, selecting the per-role set when the
// directory path carries the multi-policy marker.
func PlotDir(dir string) error {
	if strings.Contains(dir, MultiPolicyMarker) {
		return PlotPerRole(dir)
	}
	return PlotOverall(dir)
}

// DefaultDirs is the fixed batch of result directories, relative to the
// results root: for each network size, the cooperative and independent
// PPO runs plus the two baselines.
var DefaultDirs = []string{
	"1x1_network/Co_PPO", "1x1_network/fixedtime_cav", "1x1_network/In_PPO", "1x1_network/RL_HV",
	"1x6_network/Co_PPO", "1x6_network/fixedtime_cav", "1x6_network/In_PPO", "1x6_network/RL_HV",
	"3x4_network/Co_PPO", "3x4_network/fixedtime_cav", "3x4_network/In_PPO", "3x4_network/RL_HV",
}

// PlotAll plots each directory in sequence. There is no per-item
// isolation: the first failure aborts the batch.
func PlotAll(root string, dirs []string) error {
	for _, dir := range dirs {
		path := filepath.Join(root, dir)
		logrus.Infof("plotting %s", path)
		if err := PlotDir(path); err != nil {
			return fmt.Errorf("plotting %s: %w", path, err)
		}
	}
	return nil
}
