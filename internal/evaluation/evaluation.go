// internal/evaluation/evaluation.go
// Package evaluation orchestrates the scoring pipeline: it loads the
// reference table and each experiment's corpus, discovers the model's run
// files, scores every run in both views, and aggregates the results.
package evaluation

import (
	"fmt"
	"sort"

	"github.com/mwiater/mirpeval/internal/answers"
	"github.com/mwiater/mirpeval/internal/appconfig"
	"github.com/mwiater/mirpeval/internal/dataset"
	"github.com/mwiater/mirpeval/internal/logging"
	"github.com/mwiater/mirpeval/internal/orientation"
	"github.com/mwiater/mirpeval/internal/scoring"
)

// ExperimentResult holds one experiment group's aggregated statistics.
// Anatomy is nil when no reference table is configured.
type ExperimentResult struct {
	Key        string                    `json:"key"`
	Experiment appconfig.Experiment      `json:"experiment"`
	Base       string                    `json:"base"`
	Image      scoring.AggregatedResult  `json:"image"`
	Anatomy    *scoring.AggregatedResult `json:"anatomy,omitempty"`
	Unmatched  int                       `json:"unmatched"`
}

// SkippedExperiment records an experiment group that could not be aggregated,
// with the reason it was skipped.
type SkippedExperiment struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Summary is the outcome of one full evaluation pass.
type Summary struct {
	Results []ExperimentResult  `json:"results"`
	Skipped []SkippedExperiment `json:"skipped,omitempty"`
}

// Run evaluates every configured experiment. Dataset problems fail the whole
// pass; an experiment group with an incomplete run set is skipped and
// reported, not fatal, so one missing file does not discard the rest of the
// sweep.
func Run(cfg appconfig.Config) (Summary, error) {
	var ref *orientation.ReferenceTable
	if cfg.CentersPath != "" {
		var err error
		ref, err = orientation.LoadReference(cfg.CentersPath)
		if err != nil {
			return Summary{}, fmt.Errorf("loading reference table: %w", err)
		}
	}

	var summary Summary
	for _, exp := range cfg.Experiments {
		results, skipped, err := evaluateExperiment(exp, ref)
		if err != nil {
			return Summary{}, fmt.Errorf("experiment %s: %w", exp.Key(), err)
		}
		summary.Results = append(summary.Results, results...)
		summary.Skipped = append(summary.Skipped, skipped...)
	}
	return summary, nil
}

func evaluateExperiment(exp appconfig.Experiment, ref *orientation.ReferenceTable) ([]ExperimentResult, []SkippedExperiment, error) {
	corpus, err := dataset.Load(exp.DatasetPath, ref)
	if err != nil {
		return nil, nil, err
	}

	groups, err := answers.DiscoverRuns(exp.AnswersDir)
	if err != nil {
		return nil, nil, err
	}

	bases := make([]string, 0, len(groups))
	for base := range groups {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	var results []ExperimentResult
	var skipped []SkippedExperiment
	for _, base := range bases {
		runs := groups[base]
		key := exp.Key()
		if len(bases) > 1 {
			key = key + "/" + base
		}

		if len(runs) < scoring.RequiredRuns {
			reason := fmt.Sprintf("%d of %d runs present", len(runs), scoring.RequiredRuns)
			logging.LogAnomaly("incomplete_run_set", key, "", reason)
			skipped = append(skipped, SkippedExperiment{Key: key, Reason: reason})
			continue
		}

		result, err := evaluateGroup(key, exp, base, corpus, runs, ref != nil)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, result)
	}
	return results, skipped, nil
}

func evaluateGroup(key string, exp appconfig.Experiment, base string, corpus *dataset.Corpus, runs []answers.RunFile, withAnatomy bool) (ExperimentResult, error) {
	imageStats := make([]scoring.RunStatistics, 0, len(runs))
	anatomyStats := make([]scoring.RunStatistics, 0, len(runs))
	unmatched := 0

	for _, run := range runs {
		stats := scoring.Score(corpus, run, scoring.ImageView)
		runLabel := fmt.Sprintf("run_%d", run.RunIndex)
		if stats.Unmatched > 0 {
			logging.LogAnomaly("unmatched_answers", key, runLabel,
				fmt.Sprintf("%d answers had no matching question", stats.Unmatched))
		}
		if stats.Duplicates > 0 {
			logging.LogAnomaly("duplicate_answers", key, runLabel,
				fmt.Sprintf("%d repeated answers ignored after the first", stats.Duplicates))
		}
		if stats.Unanswered > 0 {
			logging.LogAnomaly("unanswered_questions", key, runLabel,
				fmt.Sprintf("%d corpus questions received no answer", stats.Unanswered))
		}
		unmatched += stats.Unmatched
		imageStats = append(imageStats, stats)

		if withAnatomy {
			anatomyStats = append(anatomyStats, scoring.Score(corpus, run, scoring.AnatomyView))
		}
	}

	imageAgg, err := scoring.Aggregate(key, scoring.ImageView, imageStats)
	if err != nil {
		return ExperimentResult{}, err
	}
	if imageAgg.SurplusRuns > 0 {
		logging.LogAnomaly("surplus_runs", key, "",
			fmt.Sprintf("%d extra runs ignored, first %d used", imageAgg.SurplusRuns, scoring.RequiredRuns))
	}

	result := ExperimentResult{
		Key:        key,
		Experiment: exp,
		Base:       base,
		Image:      imageAgg,
		Unmatched:  unmatched,
	}

	if withAnatomy {
		anatomyAgg, err := scoring.Aggregate(key, scoring.AnatomyView, anatomyStats)
		if err != nil {
			return ExperimentResult{}, err
		}
		result.Anatomy = &anatomyAgg
	}
	return result, nil
}
