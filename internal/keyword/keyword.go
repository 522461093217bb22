// internal/keyword/keyword.go
// Package keyword finds which known entity names a piece of test source refers to.
package keyword

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Options controls how names are matched against text.
type Options struct {
	// WordBoundary requires a match not to be surrounded by identifier
	// characters. The default is plain substring containment, so a short
	// name also matches inside a longer identifier.
	WordBoundary bool
}

// Scan returns the names that occur in text, in the order they appear in names.
// Duplicate names in the input are reported each time they occur.
func Scan(text string, names []string, opts Options) []string {
	var found []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if contains(text, name, opts) {
			found = append(found, name)
		}
	}
	return found
}

func contains(text, name string, opts Options) bool {
	if !opts.WordBoundary {
		return strings.Contains(text, name)
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], name)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(name)
		if !identBefore(text, start) && !identAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
}

func identBefore(text string, pos int) bool {
	if pos == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return isIdent(r)
}

func identAfter(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return isIdent(r)
}

func isIdent(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
