// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultOutputDir is where result workbooks and JSON summaries are written.
	defaultOutputDir = "results"
)

// Config is the evaluation harness configuration. It is loaded once and
// passed explicitly into the pipeline; the core holds no process-wide
// mutable state.
type Config struct {
	Experiments []Experiment `json:"experiments"`
	CentersPath string       `json:"centersPath,omitempty"`
	OutputDir   string       `json:"outputDir,omitempty"`
	Debug       bool         `json:"debug"`
	LogFile     string       `json:"logFile,omitempty"`
	ConfigPath  string       `json:"-"`
}

// Experiment names one evaluated configuration: a research question, the
// marker style drawn on the slices, the model that answered, the dataset the
// questions came from, and the directory holding the model's run files.
type Experiment struct {
	Name        string `json:"name"`
	Marker      string `json:"marker"`
	Model       string `json:"model"`
	DatasetPath string `json:"dataset"`
	AnswersDir  string `json:"answers"`
}

// Key identifies the experiment in summaries and output files.
func (e Experiment) Key() string {
	parts := []string{e.Name}
	if e.Marker != "" {
		parts = append(parts, e.Marker)
	}
	parts = append(parts, e.Model)
	return strings.Join(parts, "/")
}

// OutputDirectory returns the directory for result files, applying a default
// if not set.
func (c Config) OutputDirectory() string {
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		return dir
	}
	return defaultOutputDir
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := strings.TrimSpace(c.LogFile); path != "" {
		return path
	}
	return "mirpeval.log"
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

func (c Config) validate() error {
	if len(c.Experiments) == 0 {
		return errors.New("config must contain at least one experiment")
	}
	for i, exp := range c.Experiments {
		if exp.Name == "" {
			return fmt.Errorf("experiment %d is missing a name", i)
		}
		if exp.Model == "" {
			return fmt.Errorf("experiment %q is missing a model", exp.Name)
		}
		if exp.DatasetPath == "" {
			return fmt.Errorf("experiment %q is missing a dataset path", exp.Name)
		}
		if exp.AnswersDir == "" {
			return fmt.Errorf("experiment %q is missing an answers directory", exp.Name)
		}
	}
	return nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
