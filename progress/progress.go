// Package progress reads and plots trainer progress logs.
//
// A progress log is the CSV the trainer appends one row to per training
// iteration: overall episode reward statistics plus, for multi-policy
// runs, per-role reward statistics namespaced by policy name.
package progress

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// FileName is the log file expected inside every result directory.
const FileName = "progress.csv"

// Columns always present in a progress log.
const (
	ColIteration  = "training_iteration"
	ColRewardMean = "episode_reward_mean"
	ColRewardMin  = "episode_reward_min"
	ColRewardMax  = "episode_reward_max"
)

// PolicyCol names a per-policy reward column, e.g. "policy_reward_mean/cav".
func PolicyCol(stat, policy string) string {
	return fmt.Sprintf("policy_reward_%s/%s", stat, policy)
}

// PolicyStats holds one role's reward statistics for a single iteration.
type PolicyStats struct {
	Mean float64
	Min  float64
	Max  float64
}

// Row is one training iteration of a progress log.
type Row struct {
	Iteration  int
	RewardMean float64
	RewardMin  float64
	RewardMax  float64

	// Per-policy statistics, keyed by policy name. Nil for single-policy logs.
	Policies map[string]PolicyStats
}

// Log is a parsed progress file.
type Log struct {
	Rows []Row

	// PolicyNames are the roles with per-policy columns, in header order.
	PolicyNames []string
}

// HasPolicy reports whether the log carries per-policy statistics for name.
func (l *Log) HasPolicy(name string) bool {
	for _, p := range l.PolicyNames {
		if p == name {
			return true
		}
	}
	return false
}

// Iterations returns the iteration counter column as floats, for plotting.
func (l *Log) Iterations() []float64 {
	xs := make([]float64, len(l.Rows))
	for i, r := range l.Rows {
		xs[i] = float64(r.Iteration)
	}
	return xs
}

// RewardMeans returns the overall mean-reward column.
func (l *Log) RewardMeans() []float64 {
	ys := make([]float64, len(l.Rows))
	for i, r := range l.Rows {
		ys[i] = r.RewardMean
	}
	return ys
}

// PolicyMeans returns the mean-reward column for one policy.
func (l *Log) PolicyMeans(name string) ([]float64, error) {
	if !l.HasPolicy(name) {
		return nil, fmt.Errorf("log has no per-policy columns for %q", name)
	}
	ys := make([]float64, len(l.Rows))
	for i, r := range l.Rows {
		ys[i] = r.Policies[name].Mean
	}
	return ys, nil
}

// knownPolicies are the roles whose per-policy columns Load looks for.
var knownPolicies = []string{"cav", "tl"}

// Load reads and validates a progress log. The four episode-scoped columns
// are required; per-policy columns are picked up when present, all three
// statistics per role or none. The iteration counter must be strictly
// increasing.
func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open progress log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read progress log: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("progress log %s is empty or missing header", path)
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		colIdx[name] = i
	}
	for _, name := range []string{ColIteration, ColRewardMean, ColRewardMin, ColRewardMax} {
		if _, ok := colIdx[name]; !ok {
			return nil, fmt.Errorf("progress log %s missing column %q", path, name)
		}
	}

	var policyNames []string
	for _, p := range knownPolicies {
		_, hasMean := colIdx[PolicyCol("mean", p)]
		_, hasMin := colIdx[PolicyCol("min", p)]
		_, hasMax := colIdx[PolicyCol("max", p)]
		if hasMean && hasMin && hasMax {
			policyNames = append(policyNames, p)
		} else if hasMean || hasMin || hasMax {
			return nil, fmt.Errorf("progress log %s has partial per-policy columns for %q", path, p)
		}
	}

	log := &Log{PolicyNames: policyNames}
	prevIter := 0
	for line, rec := range records[1:] {
		row, err := parseRow(rec, colIdx, policyNames)
		if err != nil {
			return nil, fmt.Errorf("progress log %s line %d: %w", path, line+2, err)
		}
		if len(log.Rows) > 0 && row.Iteration <= prevIter {
			return nil, fmt.Errorf("progress log %s line %d: training_iteration %d not increasing (previous %d)",
				path, line+2, row.Iteration, prevIter)
		}
		prevIter = row.Iteration
		log.Rows = append(log.Rows, row)
	}
	return log, nil
}

func parseRow(rec []string, colIdx map[string]int, policyNames []string) (Row, error) {
	field := func(name string) (string, error) {
		i := colIdx[name]
		if i >= len(rec) {
			return "", fmt.Errorf("short record: no field for column %q", name)
		}
		return rec[i], nil
	}
	floatField := func(name string) (float64, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}
		return v, nil
	}

	var row Row
	iterStr, err := field(ColIteration)
	if err != nil {
		return row, err
	}
	row.Iteration, err = strconv.Atoi(iterStr)
	if err != nil {
		return row, fmt.Errorf("column %q: %w", ColIteration, err)
	}
	if row.RewardMean, err = floatField(ColRewardMean); err != nil {
		return row, err
	}
	if row.RewardMin, err = floatField(ColRewardMin); err != nil {
		return row, err
	}
	if row.RewardMax, err = floatField(ColRewardMax); err != nil {
		return row, err
	}

	if len(policyNames) > 0 {
		row.Policies = make(map[string]PolicyStats, len(policyNames))
		for _, p := range policyNames {
			var ps PolicyStats
			if ps.Mean, err = floatField(PolicyCol("mean", p)); err != nil {
				return row, err
			}
			if ps.Min, err = floatField(PolicyCol("min", p)); err != nil {
				return row, err
			}
			if ps.Max, err = floatField(PolicyCol("max", p)); err != nil {
				return row, err
			}
			row.Policies[p] = ps
		}
	}
	return row, nil
}

// Save writes rows to a progress CSV in the trainer's column layout.
// Per-policy columns are emitted for the given policy names, which must
// have statistics present in every row.
func Save(path string, rows []Row, policyNames []string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create progress log: %w", err)
	}
	defer file.Close()

	header := []string{ColIteration, ColRewardMean, ColRewardMin, ColRewardMax}
	for _, p := range policyNames {
		header = append(header, PolicyCol("mean", p), PolicyCol("min", p), PolicyCol("max", p))
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write progress header: %w", err)
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, r := range rows {
		rec := []string{strconv.Itoa(r.Iteration), f(r.RewardMean), f(r.RewardMin), f(r.RewardMax)}
		for _, p := range policyNames {
			ps, ok := r.Policies[p]
			if !ok {
				return fmt.Errorf("row %d has no statistics for policy %q", r.Iteration, p)
			}
			rec = append(rec, f(ps.Mean), f(ps.Min), f(ps.Max))
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write progress row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
