// internal/evaluation/validate.go
package evaluation

import (
	"errors"
	"fmt"

	"github.com/mwiater/mirpeval/internal/appconfig"
	"github.com/mwiater/mirpeval/internal/dataset"
	"github.com/mwiater/mirpeval/internal/orientation"
)

// DatasetCheck is the validation outcome for one experiment's dataset.
type DatasetCheck struct {
	Key         string   `json:"key"`
	DatasetPath string   `json:"datasetPath"`
	Questions   int      `json:"questions"`
	Violations  []string `json:"violations,omitempty"`
}

// ValidationReport lists every configured dataset's violations, if any.
type ValidationReport struct {
	Checks []DatasetCheck `json:"checks"`
}

// OK reports whether every dataset passed validation.
func (r ValidationReport) OK() bool {
	for _, check := range r.Checks {
		if len(check.Violations) > 0 {
			return false
		}
	}
	return true
}

// Validate runs boundary validation over every configured dataset without
// scoring anything. Malformed datasets are collected into the report rather
// than failing the pass; only unreadable files or a broken reference table
// return an error.
func Validate(cfg appconfig.Config) (ValidationReport, error) {
	var ref *orientation.ReferenceTable
	if cfg.CentersPath != "" {
		var err error
		ref, err = orientation.LoadReference(cfg.CentersPath)
		if err != nil {
			return ValidationReport{}, fmt.Errorf("loading reference table: %w", err)
		}
	}

	var report ValidationReport
	for _, exp := range cfg.Experiments {
		check := DatasetCheck{Key: exp.Key(), DatasetPath: exp.DatasetPath}

		corpus, err := dataset.Load(exp.DatasetPath, ref)
		if err != nil {
			var malformed *dataset.MalformedDatasetError
			if !errors.As(err, &malformed) {
				return ValidationReport{}, fmt.Errorf("experiment %s: %w", exp.Key(), err)
			}
			check.Violations = malformed.Violations
		} else {
			check.Questions = corpus.Len()
		}
		report.Checks = append(report.Checks, check)
	}
	return report, nil
}
