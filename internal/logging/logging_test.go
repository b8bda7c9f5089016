package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "mirpeval.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogAnomaly("unmatched_answer", "RQ1/dots/model-x", "run_2", "no matching question")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[UNMATCHED_ANSWER]") {
		t.Fatalf("expected LogAnomaly content, got: %s", content)
	}
}

func TestBuildAnomalyMessageDefaults(t *testing.T) {
	msg := buildAnomalyMessage(" surplus_runs ", " ", " run_4 ", map[string]any{"ok": true})
	if !strings.Contains(msg, "[SURPLUS_RUNS]") {
		t.Fatalf("expected uppercased kind, got: %s", msg)
	}
	if !strings.Contains(msg, "experiment=unknown") {
		t.Fatalf("expected default experiment, got: %s", msg)
	}
	if !strings.Contains(msg, "run=run_4") {
		t.Fatalf("expected run name, got: %s", msg)
	}
	if !strings.Contains(msg, "detail={\"ok\":true}") {
		t.Fatalf("expected detail json, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}
