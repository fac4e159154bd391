package runner

import (
	"regexp"
	"strings"
)

var (
	goResultRe = regexp.MustCompile(`^\s*--- (PASS|FAIL|SKIP): (\S+) \(`)

	pytestVerboseRe = regexp.MustCompile(`^(\S+::\S+)\s+(PASSED|FAILED|SKIPPED|ERROR)\b`)
	pytestShortRe   = regexp.MustCompile(`^(FAILED|ERROR)\s+(\S+?)(?:\s+-\s+(.*))?$`)
	pytestSummaryRe = regexp.MustCompile(`=+ (.*?) in [0-9.]+s`)
)

// parseCases extracts individual test results from runner output based on
// the flavor of the test command. Unknown flavors yield no cases; the
// report then carries status and raw output only.
func parseCases(command, stdout, stderr string) []Case {
	switch {
	case strings.HasPrefix(command, "go test"):
		return parseGoTest(stdout + "\n" + stderr)
	case strings.HasPrefix(command, "pytest"), strings.Contains(command, "-m pytest"):
		return parsePytest(stdout + "\n" + stderr)
	}
	return nil
}

// parseGoTest reads `go test -v` style output.
//
//	--- FAIL: TestSubtract (0.00s)
//	    calc_test.go:12: got 3, want 2
func parseGoTest(output string) []Case {
	var cases []Case
	lines := strings.Split(output, "\n")

	for i, line := range lines {
		m := goResultRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		c := Case{Name: m[2]}
		switch m[1] {
		case "PASS":
			c.Status = CasePassed
		case "FAIL":
			c.Status = CaseFailed
			c.Message = goFailureMessage(lines, i)
		case "SKIP":
			c.Status = CaseSkipped
		}
		cases = append(cases, c)
	}

	return cases
}

// goFailureMessage collects the indented lines following a --- FAIL marker.
func goFailureMessage(lines []string, start int) string {
	indent := leadingWhitespace(lines[start])
	var msg []string
	for _, line := range lines[start+1:] {
		if line == "" || goResultRe.MatchString(line) {
			break
		}
		if len(leadingWhitespace(line)) <= len(indent) {
			break
		}
		msg = append(msg, strings.TrimSpace(line))
	}
	return strings.Join(msg, "\n")
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// parsePytest reads pytest output, both verbose per-test lines and the
// short FAILED summary lines.
func parsePytest(output string) []Case {
	seen := make(map[string]int)
	var cases []Case

	add := func(c Case) {
		if idx, ok := seen[c.Name]; ok {
			// Prefer the entry that carries a message
			if cases[idx].Message == "" && c.Message != "" {
				cases[idx] = c
			}
			return
		}
		seen[c.Name] = len(cases)
		cases = append(cases, c)
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		if m := pytestVerboseRe.FindStringSubmatch(line); m != nil {
			c := Case{Name: m[1]}
			switch m[2] {
			case "PASSED":
				c.Status = CasePassed
			case "FAILED", "ERROR":
				c.Status = CaseFailed
			case "SKIPPED":
				c.Status = CaseSkipped
			}
			add(c)
			continue
		}

		if m := pytestShortRe.FindStringSubmatch(line); m != nil {
			add(Case{Name: m[2], Status: CaseFailed, Message: m[3]})
		}
	}

	return cases
}

// pytestSummary extracts pytest's own "1 failed, 1 passed" digest.
func pytestSummary(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if m := pytestSummaryRe.FindStringSubmatch(line); m != nil {
			return strings.Trim(m[1], "= ")
		}
	}
	return ""
}
