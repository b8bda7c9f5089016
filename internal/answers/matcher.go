// internal/answers/matcher.go
// Package answers loads persisted model-answer run files and normalizes raw
// model output into binary verdicts.
package answers

import "strings"

// Verdict is the normalized form of a model's raw answer.
type Verdict int

const (
	Unparseable Verdict = iota
	No
	Yes
)

// String returns the verdict name used in logs and summaries.
func (v Verdict) String() string {
	switch v {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unparseable"
	}
}

// Normalize maps a raw model answer onto a verdict. The benchmark prompt
// mandates exactly one character, '1' or '0', so only a whitespace-trimmed
// "1" or "0" parses; everything else (empty output, prose, yes/no words,
// multiple characters) is Unparseable. There is no fuzzy interpretation:
// non-compliant output is an experimental signal and is preserved in the
// statistics instead of being guessed at.
func Normalize(raw string) Verdict {
	switch strings.TrimSpace(raw) {
	case "1":
		return Yes
	case "0":
		return No
	default:
		return Unparseable
	}
}
