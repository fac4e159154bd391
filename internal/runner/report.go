// Package runner executes a project's test suite and turns the output into
// structured reports, replacing hand-simulated test results with real runs.
package runner

import (
	"fmt"
	"strings"
	"time"
)

// Report statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Case statuses.
const (
	CasePassed  = "passed"
	CaseFailed  = "failed"
	CaseSkipped = "skipped"
)

// Case is a single test result extracted from runner output.
type Case struct {
	// Name identifies the test (go: TestX, pytest: file::test).
	Name string `json:"test"`

	// Status is passed, failed or skipped.
	Status string `json:"status"`

	// Message carries the failure output for failed cases.
	Message string `json:"error,omitempty"`
}

// Report is the structured outcome of a test run.
type Report struct {
	// Status is "success" when the test command exited zero.
	Status string `json:"status"`

	// Command is the test command that ran.
	Command string `json:"command"`

	// Summary is a one-line digest (e.g. "1 failed, 1 passed").
	Summary string `json:"summary"`

	// Cases are the individual test results, when the output was parseable.
	Cases []Case `json:"details,omitempty"`

	// Stdout and Stderr are the raw captured streams.
	Stdout string `json:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// Failed returns the failing cases.
func (r *Report) Failed() []Case {
	var failed []Case
	for _, c := range r.Cases {
		if c.Status == CaseFailed {
			failed = append(failed, c)
		}
	}
	return failed
}

// counts renders a pytest-style summary from case tallies.
func counts(cases []Case) string {
	var passed, failed, skipped int
	for _, c := range cases {
		switch c.Status {
		case CasePassed:
			passed++
		case CaseFailed:
			failed++
		case CaseSkipped:
			skipped++
		}
	}

	var parts []string
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	if passed > 0 {
		parts = append(parts, fmt.Sprintf("%d passed", passed))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}
	if len(parts) == 0 {
		return "no tests reported"
	}
	return strings.Join(parts, ", ")
}
