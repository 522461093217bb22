// internal/lang/lang.go
// Package lang holds the per-language line patterns used to recognize
// definition headers, import-like lines and test cases in plain source text.
package lang

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Language identifies the source language of entity and test code.
type Language string

const (
	// Python selects def/class headers and the __init__ constructor.
	Python Language = "python"
	// JavaScript selects function/class/const/let headers and the constructor method.
	JavaScript Language = "javascript"
)

// ErrUnknownLanguage is returned by Parse for tags other than python or javascript.
var ErrUnknownLanguage = errors.New("unknown language")

// ident matches an identifier, including non-ASCII letters.
const ident = `[\p{L}\p{N}_]+`

var (
	pythonHeader     = regexp.MustCompile(`^\s*(def|class)\s+(` + ident + `)`)
	javascriptHeader = regexp.MustCompile(`^\s*(function|class|const|let)\s+(` + ident + `)`)

	pythonTestCase     = regexp.MustCompile(`^\s*(def test|class\s)`)
	javascriptTestCase = regexp.MustCompile(`^\s*(it|describe|test)\s*\(`)

	importLine = regexp.MustCompile(`^(?:\s*from\s+` + ident + `|\s*import\s+|\s*@` + ident + `)`)
)

// Parse converts a configuration tag into a Language.
func Parse(tag string) (Language, error) {
	want := Language(strings.ToLower(strings.TrimSpace(tag)))
	var names []string
	for _, l := range Supported() {
		if l == want {
			return l, nil
		}
		names = append(names, l.String())
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownLanguage, tag, strings.Join(names, ", "))
}

// Supported lists every language accepted by Parse.
func Supported() []Language {
	return []Language{Python, JavaScript}
}

// String returns the tag form of the language.
func (l Language) String() string { return string(l) }

// HeaderPattern returns the anchored definition-header pattern. The second
// capture group holds the defined name.
func (l Language) HeaderPattern() *regexp.Regexp {
	if l == JavaScript {
		return javascriptHeader
	}
	return pythonHeader
}

// Constructor returns the special initializer name that is never treated as an entity.
func (l Language) Constructor() string {
	if l == JavaScript {
		return "constructor"
	}
	return "__init__"
}

// TestCasePattern matches the first line of a single test case.
func (l Language) TestCasePattern() *regexp.Regexp {
	if l == JavaScript {
		return javascriptTestCase
	}
	return pythonTestCase
}

// ImportPattern matches import, from-import and decorator lines. It is the
// same for every language.
func (l Language) ImportPattern() *regexp.Regexp {
	return importLine
}

// HeaderName reports the name defined on line, if line looks like a definition header.
func (l Language) HeaderName(line string) (string, bool) {
	m := l.HeaderPattern().FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// IsImport reports whether line is an import-like or decorator line.
func (l Language) IsImport(line string) bool {
	return l.ImportPattern().MatchString(line)
}
