// internal/scoring/scorer.go
// Package scoring computes per-run confusion-matrix statistics and aggregates
// them across the repeated runs of an experiment.
package scoring

import (
	"github.com/mwiater/mirpeval/internal/answers"
	"github.com/mwiater/mirpeval/internal/dataset"
)

// Mode selects which reference frame supplies the ground truth.
type Mode int

const (
	// ImageView judges correctness by what is literally rendered in the
	// (possibly rotated/flipped) slice.
	ImageView Mode = iota
	// AnatomyView judges correctness by true patient-body laterality,
	// independent of the rendering transform. Only left/right questions are
	// anatomy-evaluable; other records are skipped.
	AnatomyView
)

// String returns the mode name used in summaries and output files.
func (m Mode) String() string {
	if m == AnatomyView {
		return "anatomy"
	}
	return "image"
}

// RunStatistics holds one run's confusion matrix and derived metrics, with
// YES as the positive class. Recomputed from scratch on every scoring pass,
// never mutated incrementally.
type RunStatistics struct {
	RunIndex      int     `json:"runIndex"`
	TruePositive  int     `json:"truePositive"`
	FalsePositive int     `json:"falsePositive"`
	TrueNegative  int     `json:"trueNegative"`
	FalseNegative int     `json:"falseNegative"`
	Correct       int     `json:"correct"`
	Incorrect     int     `json:"incorrect"`
	Unsure        int     `json:"unsure"`
	Unmatched     int     `json:"unmatched"`
	Duplicates    int     `json:"duplicates"`
	Unanswered    int     `json:"unanswered"`
	Accuracy      float64 `json:"accuracy"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	F1            float64 `json:"f1"`
}

// Scored returns the number of answers that entered the confusion matrix.
func (s RunStatistics) Scored() int {
	return s.TruePositive + s.TrueNegative + s.FalsePositive + s.FalseNegative
}

// Score compares one run's answers against the corpus ground truth under the
// given mode.
//
// Unparseable answers are counted as wrong predictions, not excluded: the
// prompt strictly mandates single-character output, so non-compliance is
// scored against the model by predicting the opposite of the ground truth.
// They are tallied in Unsure alongside Incorrect.
//
// Exactly one answer is expected per question and run. Answers with no
// matching question record stay out of the matrix and are tallied in
// Unmatched; repeated answers to the same question are scored on the first
// occurrence only and tallied in Duplicates; corpus questions the run never
// answered are tallied in Unanswered. All three are data-integrity tallies
// for the caller to report.
func Score(corpus *dataset.Corpus, run answers.RunFile, mode Mode) RunStatistics {
	stats := RunStatistics{RunIndex: run.RunIndex}
	seen := make(map[answerKey]bool, len(run.Records))

	for _, record := range run.Records {
		question, ok := corpus.Lookup(record.ImageID, record.Question)
		if !ok {
			stats.Unmatched++
			continue
		}

		key := answerKey{imageID: record.ImageID, question: record.Question}
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true

		var truth bool
		switch mode {
		case AnatomyView:
			if question.AnatomyViewAnswer == nil {
				continue
			}
			truth = *question.AnatomyViewAnswer
		default:
			truth = question.ImageViewAnswer
		}

		var predicted bool
		switch answers.Normalize(record.RawAnswer) {
		case answers.Yes:
			predicted = true
		case answers.No:
			predicted = false
		default:
			stats.Unsure++
			predicted = !truth
		}

		switch {
		case truth && predicted:
			stats.TruePositive++
		case !truth && !predicted:
			stats.TrueNegative++
		case !truth && predicted:
			stats.FalsePositive++
		default:
			stats.FalseNegative++
		}
	}

	stats.Correct = stats.TruePositive + stats.TrueNegative
	stats.Incorrect = stats.FalsePositive + stats.FalseNegative
	stats.Unanswered = corpus.Len() - len(seen)
	deriveMetrics(&stats)
	return stats
}

// answerKey identifies one question within a run; a second answer under the
// same key is a duplicate.
type answerKey struct {
	imageID  string
	question string
}

func deriveMetrics(stats *RunStatistics) {
	total := stats.Scored()
	if total > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(total)
	}
	if stats.TruePositive+stats.FalsePositive > 0 {
		stats.Precision = float64(stats.TruePositive) / float64(stats.TruePositive+stats.FalsePositive)
	}
	if stats.TruePositive+stats.FalseNegative > 0 {
		stats.Recall = float64(stats.TruePositive) / float64(stats.TruePositive+stats.FalseNegative)
	}
	if stats.Precision+stats.Recall > 0 {
		stats.F1 = 2 * stats.Precision * stats.Recall / (stats.Precision + stats.Recall)
	}
}
