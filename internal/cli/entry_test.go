package mirpeval

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/mirpeval/internal/appconfig"
)

const cliDatasetFixture = `[
	{
		"filename": "scan.png",
		"base_name": "scan",
		"rotate_flip_short": "B1",
		"question_answer": [
			{
				"object1_name": "right kidney", "object2_name": "left kidney",
				"object1_gray": 1, "object2_gray": 2,
				"object1_center_x": 10, "object1_center_y": 10,
				"object2_center_x": 200, "object2_center_y": 10,
				"question": "Is the right kidney to the left of the left kidney?",
				"answer": 1
			}
		]
	}
]`

const cliRunFixture = `[
	{
		"file_name": "scan.png",
		"results_call": [
			{"question": "Is the right kidney to the left of the left kidney?", "model_answer": "1", "expected_answer": 1, "entire_prompt": "p"}
		]
	}
]`

func cliFixtureConfig(t *testing.T) appconfig.Config {
	t.Helper()
	dir := t.TempDir()

	datasetPath := filepath.Join(dir, "qa.json")
	if err := os.WriteFile(datasetPath, []byte(cliDatasetFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	answersDir := filepath.Join(dir, "answers")
	if err := os.MkdirAll(answersDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for run := 1; run <= 3; run++ {
		path := filepath.Join(answersDir, fmt.Sprintf("qa_all_run_%d.json", run))
		if err := os.WriteFile(path, []byte(cliRunFixture), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return appconfig.Config{
		Experiments: []appconfig.Experiment{
			{
				Name:        "RQ1",
				Marker:      "dots",
				Model:       "model-x",
				DatasetPath: datasetPath,
				AnswersDir:  answersDir,
			},
		},
		OutputDir: filepath.Join(dir, "results"),
		LogFile:   filepath.Join(dir, "mirpeval.log"),
	}
}

func TestRunEvaluateWritesOutputs(t *testing.T) {
	cfg := cliFixtureConfig(t)

	var buf bytes.Buffer
	if err := runEvaluate(&buf, cfg); err != nil {
		t.Fatalf("runEvaluate returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "RQ1/dots/model-x") {
		t.Fatalf("summary table missing experiment key:\n%s", out)
	}
	for _, name := range []string{"evaluation_summary.json", "evaluation_results.xlsx"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Fatalf("expected output file %s: %v", name, err)
		}
	}
}

func TestRunValidateCleanDataset(t *testing.T) {
	cfg := cliFixtureConfig(t)

	var buf bytes.Buffer
	if err := runValidate(&buf, cfg); err != nil {
		t.Fatalf("runValidate returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "OK RQ1/dots/model-x (1 questions)") {
		t.Fatalf("unexpected validate output:\n%s", buf.String())
	}
}

func TestRunValidateReportsViolations(t *testing.T) {
	cfg := cliFixtureConfig(t)
	broken := strings.Replace(cliDatasetFixture, `"rotate_flip_short": "B1"`, `"rotate_flip_short": "Z9"`, 1)
	if err := os.WriteFile(cfg.Experiments[0].DatasetPath, []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err := runValidate(&buf, cfg)
	if err == nil {
		t.Fatal("runValidate should fail on an invalid transform code")
	}
	if !strings.Contains(buf.String(), "FAIL RQ1/dots/model-x") {
		t.Fatalf("unexpected validate output:\n%s", buf.String())
	}
}

func TestRunShowConfigWithoutConfig(t *testing.T) {
	var buf bytes.Buffer
	runShowConfig(&buf)
	if !strings.Contains(buf.String(), "No config file loaded") {
		t.Fatalf("unexpected show config output:\n%s", buf.String())
	}
}
