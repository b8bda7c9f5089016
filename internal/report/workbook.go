// internal/report/workbook.go
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/mwiater/mirpeval/internal/evaluation"
	"github.com/mwiater/mirpeval/internal/scoring"
)

const (
	imageSheet   = "Image View"
	anatomySheet = "Anatomy View"
)

// WriteWorkbook writes the result workbook into dir: one sheet for image-view
// scoring over all questions and one for anatomy-view scoring over the
// left/right subset. The column layout mirrors the published result sheets,
// with per-run counts ahead of the aggregated means.
func WriteWorkbook(dir string, summary evaluation.Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", imageSheet)
	if _, err := f.NewSheet(anatomySheet); err != nil {
		return "", fmt.Errorf("creating anatomy sheet: %w", err)
	}

	if err := writeSheet(f, imageSheet, summary, func(r evaluation.ExperimentResult) *scoring.AggregatedResult {
		return &r.Image
	}); err != nil {
		return "", err
	}
	if err := writeSheet(f, anatomySheet, summary, func(r evaluation.ExperimentResult) *scoring.AggregatedResult {
		return r.Anatomy
	}); err != nil {
		return "", err
	}

	path := filepath.Join(dir, WorkbookFileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

func writeSheet(f *excelize.File, sheet string, summary evaluation.Summary, pick func(evaluation.ExperimentResult) *scoring.AggregatedResult) error {
	header := sheetHeader()
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header on %s: %w", sheet, err)
	}

	rowIndex := 2
	for _, result := range summary.Results {
		agg := pick(result)
		if agg == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		row := sheetRow(result, *agg)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row on %s: %w", sheet, err)
		}
		rowIndex++
	}
	return nil
}

func sheetHeader() []any {
	header := []any{"experiment", "base"}
	for run := 1; run <= scoring.RequiredRuns; run++ {
		header = append(header,
			fmt.Sprintf("run%d_correct", run),
			fmt.Sprintf("run%d_incorrect", run),
			fmt.Sprintf("run%d_unsure", run),
			fmt.Sprintf("run%d_accuracy", run),
		)
	}
	header = append(header, "mean_accuracy", "std_accuracy", "mean_f1", "std_f1", "unmatched")
	return header
}

func sheetRow(result evaluation.ExperimentResult, agg scoring.AggregatedResult) []any {
	row := []any{result.Key, result.Base}
	for _, run := range agg.Runs {
		row = append(row, run.Correct, run.Incorrect, run.Unsure, run.Accuracy)
	}
	row = append(row, agg.MeanAccuracy, agg.StdAccuracy, agg.MeanF1, agg.StdF1, result.Unmatched)
	return row
}
