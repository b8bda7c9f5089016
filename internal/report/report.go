// internal/report/report.go
// Package report renders evaluation summaries: an xlsx workbook matching the
// published result sheets, a terminal summary table, and a JSON dump for
// downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwiater/mirpeval/internal/evaluation"
	"github.com/mwiater/mirpeval/internal/util"
)

// SummaryFileName is the JSON dump written next to the workbook.
const SummaryFileName = "evaluation_summary.json"

// WorkbookFileName is the xlsx workbook written into the output directory.
const WorkbookFileName = "evaluation_results.xlsx"

// WriteJSON writes the full summary as indented JSON into dir, plus one file
// per experiment under a slugified name for downstream per-model tooling.
func WriteJSON(dir string, summary evaluation.Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding summary: %w", err)
	}

	path := filepath.Join(dir, SummaryFileName)
	if err := util.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}

	for _, result := range summary.Results {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding result %s: %w", result.Key, err)
		}
		resultPath := filepath.Join(dir, fmt.Sprintf("%s.json", util.Slugify(result.Key)))
		if err := util.WriteFile(resultPath, data); err != nil {
			return "", fmt.Errorf("writing result %s: %w", result.Key, err)
		}
	}
	return path, nil
}
