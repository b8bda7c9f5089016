// internal/report/terminal.go
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/mwiater/mirpeval/internal/evaluation"
	"github.com/mwiater/mirpeval/internal/util"
)

const maxKeyWidth = 40

// PrintSummary renders the aggregated results as a terminal table, followed
// by warning lines for skipped experiments and unmatched answers.
func PrintSummary(out io.Writer, summary evaluation.Summary) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("EXPERIMENT", "MODE", "ACCURACY", "F1", "RUNS")

	for _, result := range summary.Results {
		key := util.TruncateRunes(result.Key, maxKeyWidth)
		t.Row(key, result.Image.Mode,
			meanStd(result.Image.MeanAccuracy, result.Image.StdAccuracy),
			meanStd(result.Image.MeanF1, result.Image.StdF1),
			fmt.Sprintf("%d", result.Image.RunCount))
		if result.Anatomy != nil {
			t.Row(key, result.Anatomy.Mode,
				meanStd(result.Anatomy.MeanAccuracy, result.Anatomy.StdAccuracy),
				meanStd(result.Anatomy.MeanF1, result.Anatomy.StdF1),
				fmt.Sprintf("%d", result.Anatomy.RunCount))
		}
	}

	fmt.Fprintln(out, t.Render())

	warn := color.New(color.FgYellow)
	for _, skipped := range summary.Skipped {
		warn.Fprintf(out, "skipped %s: %s\n", skipped.Key, skipped.Reason)
	}
	for _, result := range summary.Results {
		if result.Unmatched > 0 {
			warn.Fprintf(out, "%s: %d unmatched answers excluded from scoring\n", result.Key, result.Unmatched)
		}
	}
}

func meanStd(mean, std float64) string {
	return fmt.Sprintf("%.3f ± %.3f", mean, std)
}
