// internal/cli/evaluate.go
package mirpeval

import (
	"errors"

	"github.com/spf13/cobra"
)

// evaluateCmd represents the evaluate command.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score every configured experiment and write the result workbook",
	Long: `Evaluate loads each experiment's question dataset and model-answer run
files, scores every run in image view and (when a reference table is
configured) anatomy view, aggregates the three runs per experiment, and
writes the xlsx workbook and JSON summary into the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("no configuration loaded; pass --config")
		}
		return runEvaluate(cmd.OutOrStdout(), *cfg)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
