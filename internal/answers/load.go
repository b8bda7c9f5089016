// internal/answers/load.go
package answers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// runFileSchema validates a single model-answer run file: an array of per-image
// entries, each holding the inference calls made against that image.
const runFileSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["file_name", "results_call"],
		"properties": {
			"file_name": {"type": "string", "minLength": 1},
			"results_call": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["question", "model_answer"],
					"properties": {
						"question": {"type": "string", "minLength": 1},
						"model_answer": {"type": "string"},
						"expected_answer": {"type": "integer"},
						"entire_prompt": {"type": "string"}
					}
				}
			}
		}
	}
}`

// runFilePattern matches the inference side's naming convention: one file per
// run, suffixed _run_0, _run_1, _run_2.
var runFilePattern = regexp.MustCompile(`^(.*)_run_(\d+)\.json$`)

type imageResult struct {
	FileName    string       `json:"file_name"`
	ResultsCall []resultCall `json:"results_call"`
}

type resultCall struct {
	Question       string `json:"question"`
	ModelAnswer    string `json:"model_answer"`
	ExpectedAnswer int    `json:"expected_answer"`
	EntirePrompt   string `json:"entire_prompt"`
}

// Record is one recorded model answer, keyed back to a question by image ID
// and question text. Records are immutable once loaded.
type Record struct {
	ImageID   string
	Question  string
	RawAnswer string
	RunIndex  int
}

// RunFile is one loaded run: every answer the model gave during a single pass
// over an experiment configuration.
type RunFile struct {
	Path     string
	Base     string
	RunIndex int
	Records  []Record
}

// LoadRunFile reads and validates one *_run_<n>.json file and flattens its
// per-image entries into answer records.
func LoadRunFile(path string) (RunFile, error) {
	base, runIndex, err := parseRunFileName(filepath.Base(path))
	if err != nil {
		return RunFile{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return RunFile{}, fmt.Errorf("error reading run file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(runFileSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return RunFile{}, fmt.Errorf("error validating run file %s: %w", path, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return RunFile{}, fmt.Errorf("run file %s failed validation: %s", path, strings.Join(errs, "; "))
	}

	var entries []imageResult
	if err := json.Unmarshal(raw, &entries); err != nil {
		return RunFile{}, fmt.Errorf("error parsing run file %s: %w", path, err)
	}

	run := RunFile{Path: path, Base: base, RunIndex: runIndex}
	for _, entry := range entries {
		for _, call := range entry.ResultsCall {
			run.Records = append(run.Records, Record{
				ImageID:   entry.FileName,
				Question:  call.Question,
				RawAnswer: call.ModelAnswer,
				RunIndex:  runIndex,
			})
		}
	}
	return run, nil
}

// DiscoverRuns loads every *_run_<n>.json file in dir, grouped by base name
// and ordered by run index within each group. Non-matching .json files are a
// load error rather than being silently ignored.
func DiscoverRuns(dir string) (map[string][]RunFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading answers directory: %w", err)
	}

	groups := make(map[string][]RunFile)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		run, err := LoadRunFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		groups[run.Base] = append(groups[run.Base], run)
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no *_run_<n>.json files found in %s", dir)
	}

	for _, runs := range groups {
		sort.Slice(runs, func(i, j int) bool { return runs[i].RunIndex < runs[j].RunIndex })
	}
	return groups, nil
}

func parseRunFileName(name string) (string, int, error) {
	match := runFilePattern.FindStringSubmatch(name)
	if match == nil {
		return "", 0, fmt.Errorf("run file %q does not match the *_run_<n>.json pattern", name)
	}
	runIndex, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, fmt.Errorf("run file %q has an invalid run index: %w", name, err)
	}
	return match[1], runIndex, nil
}
