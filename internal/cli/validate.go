// internal/cli/validate.go
package mirpeval

import (
	"errors"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configured datasets and reference table without scoring",
	Long: `Validate runs boundary validation over every configured dataset and the
standard-orientation reference table, printing each violation. Use it to
check ground truth before spending inference budget on a model sweep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("no configuration loaded; pass --config")
		}
		return runValidate(cmd.OutOrStdout(), *cfg)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
