// internal/scoring/aggregate.go
package scoring

import (
	"errors"
	"fmt"
	"math"
)

// RequiredRuns is the number of repeated runs per experiment configuration,
// fixed by the experimental design for variance estimation.
const RequiredRuns = 3

// ErrIncompleteRunSet reports an experiment with fewer than RequiredRuns runs.
// Aggregation is skipped for that experiment rather than computed on partial
// data.
var ErrIncompleteRunSet = errors.New("incomplete run set")

// AggregatedResult summarizes one experiment configuration across its runs:
// mean and sample standard deviation of accuracy and F1.
type AggregatedResult struct {
	ExperimentKey string          `json:"experimentKey"`
	Mode          string          `json:"mode"`
	MeanAccuracy  float64         `json:"meanAccuracy"`
	StdAccuracy   float64         `json:"stdAccuracy"`
	MeanF1        float64         `json:"meanF1"`
	StdF1         float64         `json:"stdF1"`
	RunCount      int             `json:"runCount"`
	SurplusRuns   int             `json:"surplusRuns,omitempty"`
	Runs          []RunStatistics `json:"runs"`
}

// Aggregate folds an experiment's per-run statistics into a summary. Exactly
// RequiredRuns runs are expected: fewer fails with ErrIncompleteRunSet; more
// indicates duplicate runs, in which case only the first RequiredRuns in run
// order are used and the surplus is recorded so callers can flag the anomaly.
func Aggregate(experimentKey string, mode Mode, runs []RunStatistics) (AggregatedResult, error) {
	if len(runs) < RequiredRuns {
		return AggregatedResult{}, fmt.Errorf("%w: experiment %s has %d of %d runs", ErrIncompleteRunSet, experimentKey, len(runs), RequiredRuns)
	}

	surplus := len(runs) - RequiredRuns
	runs = runs[:RequiredRuns]

	accuracies := make([]float64, 0, len(runs))
	f1s := make([]float64, 0, len(runs))
	for _, run := range runs {
		accuracies = append(accuracies, run.Accuracy)
		f1s = append(f1s, run.F1)
	}

	return AggregatedResult{
		ExperimentKey: experimentKey,
		Mode:          mode.String(),
		MeanAccuracy:  mean(accuracies),
		StdAccuracy:   sampleStdDev(accuracies),
		MeanF1:        mean(f1s),
		StdF1:         sampleStdDev(f1s),
		RunCount:      len(runs),
		SurplusRuns:   surplus,
		Runs:          runs,
	}, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev computes the standard deviation with the n-1 denominator, as
// in the published result sheets. Fewer than two values yield 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
