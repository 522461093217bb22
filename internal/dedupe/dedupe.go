// internal/dedupe/dedupe.go
// Package dedupe finds definition headers in concatenated entity source and
// drops later re-definitions of names that were already emitted.
//
// The eliminator is a line scanner, not a parser. A duplicate block is
// recognized only by its header line; while skipping, blank and import-like
// lines additionally remove the most recently kept line. Body lines of a
// duplicate are dropped because the scanner stays in the skipping state until
// the next header for a name it has not seen yet.
package dedupe

import (
	"sort"
	"strings"

	"github.com/mwiater/autoworker/internal/lang"
)

// ExtractDefinitions returns the set of names defined by header lines in text.
// The language's constructor name is never included.
func ExtractDefinitions(text string, l lang.Language) map[string]struct{} {
	names := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		name, ok := l.HeaderName(line)
		if !ok || name == l.Constructor() {
			continue
		}
		names[name] = struct{}{}
	}
	return names
}

// SortedNames returns the keys of a definition set in lexical order.
func SortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Report describes a single elimination pass.
type Report struct {
	Output      string
	Definitions int      // distinct definition names in the input
	Kept        []string // header names in first-seen order
	Dropped     []string // names of re-encountered headers, one entry per occurrence
	Popped      int      // kept lines removed by the skip lookbehind
}

// RemoveDuplicates keeps the first definition of each name in text and drops
// later definitions of the same name.
func RemoveDuplicates(text string, l lang.Language) string {
	return Eliminate(text, l).Output
}

// Eliminate runs the duplicate eliminator and reports what it did.
func Eliminate(text string, l lang.Language) Report {
	report := Report{Definitions: len(ExtractDefinitions(text, l))}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	emitted := make(map[string]struct{})
	skipping := false

	for _, line := range lines {
		if name, ok := l.HeaderName(line); ok {
			if _, seen := emitted[name]; seen {
				skipping = true
				report.Dropped = append(report.Dropped, name)
			} else {
				emitted[name] = struct{}{}
				report.Kept = append(report.Kept, name)
				skipping = false
			}
		}

		if !skipping {
			out = append(out, line)
			continue
		}
		if (l.IsImport(line) || strings.TrimSpace(line) == "") && len(out) > 0 {
			out = out[:len(out)-1]
			report.Popped++
		}
	}

	report.Output = strings.Join(out, "\n")
	return report
}
