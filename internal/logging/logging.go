package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogAnomaly records a non-fatal irregularity found during evaluation, such as
// an unmatched model answer or a surplus run file. The evaluation continues;
// the log line is the audit trail.
func LogAnomaly(kind, experiment, run string, payload any) {
	msg := buildAnomalyMessage(kind, experiment, run, payload)
	log.Println(msg)
}

func buildAnomalyMessage(kind, experiment, run string, payload any) string {
	kindValue := strings.TrimSpace(kind)
	if kindValue != "" {
		kindValue = strings.ToUpper(kindValue)
	}
	expValue := strings.TrimSpace(experiment)
	if expValue == "" {
		expValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", kindValue)}
	parts = append(parts, fmt.Sprintf("experiment=%s", expValue))
	if run = strings.TrimSpace(run); run != "" {
		parts = append(parts, fmt.Sprintf("run=%s", run))
	}
	parts = append(parts, fmt.Sprintf("detail=%s", formatPayload(payload)))
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
