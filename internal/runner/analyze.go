package runner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/EGAdams/adk-web/internal/logging"
)

// Analysis statuses.
const (
	AnalysisComplete = "analysis_complete"
	NoFailuresFound  = "no_failures_found"
)

// Analysis is the diagnosis derived from a failed test report.
type Analysis struct {
	// Status is analysis_complete when failures were diagnosed,
	// no_failures_found otherwise.
	Status string `json:"status"`

	// BugReport describes the first failure in human-readable form.
	BugReport string `json:"bug_report,omitempty"`

	// FailedTests lists every failing test name.
	FailedTests []string `json:"failed_tests,omitempty"`

	// Suspects are file:line locations extracted from failure output.
	Suspects []string `json:"suspects,omitempty"`
}

// suspectRe matches file:line references in failure output
// (calc_test.go:12, tests/test_calc.py:8, src/lib.rs:40).
var suspectRe = regexp.MustCompile(`([\w./\\-]+\.(?:go|py|js|ts|rs|java|c|cpp|h)):(\d+)`)

// Analyze inspects a test report and produces a diagnosis from the actual
// failure output.
func Analyze(report *Report) *Analysis {
	failed := report.Failed()
	if len(failed) == 0 && report.Status == StatusSuccess {
		return &Analysis{Status: NoFailuresFound}
	}

	analysis := &Analysis{Status: AnalysisComplete}

	for _, c := range failed {
		analysis.FailedTests = append(analysis.FailedTests, c.Name)
	}

	// Collect file:line suspects from case messages first, then the raw
	// streams for runs whose output wasn't parseable per-case.
	seen := make(map[string]bool)
	addSuspects := func(text string) {
		for _, m := range suspectRe.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				analysis.Suspects = append(analysis.Suspects, m)
			}
		}
	}
	for _, c := range failed {
		addSuspects(c.Message)
	}
	if len(analysis.Suspects) == 0 {
		addSuspects(report.Stdout)
		addSuspects(report.Stderr)
	}

	analysis.BugReport = buildBugReport(report, failed, analysis.Suspects)

	logging.Runner("analysis: %d failed tests, %d suspects", len(analysis.FailedTests), len(analysis.Suspects))
	return analysis
}

func buildBugReport(report *Report, failed []Case, suspects []string) string {
	if len(failed) == 0 {
		// Suite failed without parseable cases (build error, crash).
		msg := firstNonEmptyLine(report.Stderr)
		if msg == "" {
			msg = firstNonEmptyLine(report.Stdout)
		}
		if msg == "" {
			msg = "test command failed with no output"
		}
		return fmt.Sprintf("Test run failed: %s", msg)
	}

	first := failed[0]
	msg := firstNonEmptyLine(first.Message)
	if msg == "" {
		msg = "no failure detail captured"
	}

	out := fmt.Sprintf("Bug in %s: %s", first.Name, msg)
	if len(suspects) > 0 {
		out += fmt.Sprintf(" (see %s)", strings.Join(suspects, ", "))
	}
	return out
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
