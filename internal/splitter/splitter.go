// internal/splitter/splitter.go
// Package splitter cuts a file of many tests into individual test cases.
package splitter

import (
	"strings"

	"github.com/mwiater/autoworker/internal/lang"
)

// Split returns the test cases in text. A case starts at a line matching the
// language's test-case pattern and runs up to the next such line. Lines
// before the first case are dropped. Each case keeps its line endings.
func Split(text string, l lang.Language) []string {
	pattern := l.TestCasePattern()

	var (
		cases   []string
		current strings.Builder
		inCase  bool
	)
	for _, line := range splitLinesKeepEnds(text) {
		if pattern.MatchString(strings.TrimLeft(line, " \t")) {
			if inCase {
				cases = append(cases, current.String())
				current.Reset()
			}
			inCase = true
		}
		if inCase {
			current.WriteString(line)
		}
	}
	if inCase {
		cases = append(cases, current.String())
	}
	return cases
}

func splitLinesKeepEnds(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
