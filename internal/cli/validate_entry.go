package mirpeval

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mwiater/mirpeval/internal/appconfig"
	"github.com/mwiater/mirpeval/internal/evaluation"
)

func runValidate(out io.Writer, cfg appconfig.Config) error {
	report, err := evaluation.Validate(cfg)
	if err != nil {
		return err
	}

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	for _, check := range report.Checks {
		if len(check.Violations) == 0 {
			fmt.Fprintf(out, "%s %s (%d questions)\n", pass("OK"), check.Key, check.Questions)
			continue
		}
		fmt.Fprintf(out, "%s %s (%s)\n", fail("FAIL"), check.Key, check.DatasetPath)
		for _, violation := range check.Violations {
			fmt.Fprintf(out, "  - %s\n", violation)
		}
	}

	if !report.OK() {
		return fmt.Errorf("dataset validation failed")
	}
	return nil
}
