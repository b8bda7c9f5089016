package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:        %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Output Dir:   %s\n", cfg.OutputDirectory())
	fmt.Fprintf(out, "  Log File:     %s\n", cfg.LogFilePath())
	if cfg.CentersPath != "" {
		fmt.Fprintf(out, "  Centers Path: %s\n", cfg.CentersPath)
	} else {
		fmt.Fprintln(out, "  Centers Path: (unset, anatomy view disabled)")
	}

	fmt.Fprintf(out, "\nExperiments (%d):\n", len(cfg.Experiments))
	for _, exp := range cfg.Experiments {
		fmt.Fprintf(out, "  %s\n", exp.Key())
		fmt.Fprintf(out, "    Dataset: %s\n", exp.DatasetPath)
		fmt.Fprintf(out, "    Answers: %s\n", exp.AnswersDir)
	}
}
