// Package errwindow extracts the error-relevant portion of a raw build log:
// windows of context lines around lines containing error keywords. Applied
// at import time so stored records carry only text worth classifying.
package errwindow

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultWindow is the number of context lines kept on each side of an
// error line.
const DefaultWindow = 2

var keywordExprs = []string{
	`\berror\b`,
	`\bfailed\b`,
	`\bfailure\b`,
	`\bfatal\b`,
	`\berror:`,
	`\bfailed:`,
	`\bfailure:`,
	`\bfatal:`,
	`\bundefined reference\b`,
	`\bcannot find\b`,
	`\bnot found\b`,
	`\bcompilation failed\b`,
	`\bcommand failed\b`,
	`make: \*\*\* \[`,
	`\bsegmentation fault\b`,
	`\bassertion failed\b`,
	`\bpermission denied\b`,
	`\bno such file\b`,
	`\bsyntax error\b`,
	`\blinker error\b`,
	`\bmissing\b`,
	`\brequired by\b`,
	`\bconflicts\b`,
}

var (
	keywords  []*regexp.Regexp
	warningRe = regexp.MustCompile(`(?i)\bwarning\b`)
)

func init() {
	keywords = make([]*regexp.Regexp, len(keywordExprs))
	for i, expr := range keywordExprs {
		keywords[i] = regexp.MustCompile(`(?i)` + expr)
	}
}

// Extract returns the log text reduced to ±window lines around every error
// line, in original order, without duplicates. Returns "" when no error
// line is found. window <= 0 uses DefaultWindow.
func Extract(text string, window int) string {
	if window <= 0 {
		window = DefaultWindow
	}
	lines := strings.Split(text, "\n")
	keep := findWindows(lines, window)
	if len(keep) == 0 {
		return ""
	}

	out := make([]string, 0, len(keep))
	for _, i := range keep {
		out = append(out, lines[i])
	}
	return strings.Join(out, "\n")
}

// findWindows returns the sorted line numbers covered by error windows.
func findWindows(lines []string, window int) []int {
	marked := make(map[int]struct{})

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if skip(trimmed) {
			continue
		}
		if !isErrorLine(trimmed) {
			continue
		}
		start := max(0, i-window)
		end := min(len(lines), i+window+1)
		for j := start; j < end; j++ {
			marked[j] = struct{}{}
		}
	}

	keep := make([]int, 0, len(marked))
	for i := range marked {
		keep = append(keep, i)
	}
	sort.Ints(keep)
	return keep
}

// skip filters lines that trip the keyword scan but carry no error signal:
// shell traces, warnings, and passed configure checks.
func skip(line string) bool {
	if strings.HasPrefix(line, "+") {
		return true
	}
	if warningRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "checking") && strings.HasSuffix(strings.TrimRight(lower, " \t"), "yes")
}

func isErrorLine(line string) bool {
	for _, re := range keywords {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
