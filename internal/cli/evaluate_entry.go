package mirpeval

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mwiater/mirpeval/internal/appconfig"
	"github.com/mwiater/mirpeval/internal/evaluation"
	"github.com/mwiater/mirpeval/internal/logging"
	"github.com/mwiater/mirpeval/internal/report"
)

func runEvaluate(out io.Writer, cfg appconfig.Config) error {
	if err := logging.Init(cfg.LogFilePath()); err != nil {
		return fmt.Errorf("initializing log: %w", err)
	}
	defer func() { _ = logging.Close() }()

	logging.LogEvent("evaluating %d experiment(s)", len(cfg.Experiments))
	summary, err := evaluation.Run(cfg)
	if err != nil {
		return err
	}

	report.PrintSummary(out, summary)

	jsonPath, err := report.WriteJSON(cfg.OutputDirectory(), summary)
	if err != nil {
		return err
	}
	workbookPath, err := report.WriteWorkbook(cfg.OutputDirectory(), summary)
	if err != nil {
		return err
	}

	success := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", success("wrote"), jsonPath)
	fmt.Fprintf(out, "%s %s\n", success("wrote"), workbookPath)

	if len(summary.Results) == 0 {
		return fmt.Errorf("no experiment produced a complete run set")
	}
	return nil
}
