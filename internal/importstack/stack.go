// internal/importstack/stack.go
// Package importstack keeps an editable stack of import statements with an
// undo history for popped entries.
package importstack

import (
	"errors"
	"regexp"
	"strings"

	"github.com/mwiater/autoworker/internal/lang"
)

var (
	// ErrEmpty is returned by Pop on an empty stack.
	ErrEmpty = errors.New("stack is empty")
	// ErrNoHistory is returned by Back when there is nothing to undo.
	ErrNoHistory = errors.New("history is empty")
	// ErrInvalidImport is returned by PushLine for text that is not an import statement.
	ErrInvalidImport = errors.New("invalid import format")
)

var importStatement = regexp.MustCompile(`^(from\s+\w+(\.\w+)*\s+import\s+[\w\s,]+|import\s+\w+(\.\w+)*)$`)

// Action is a history entry.
type Action struct {
	Kind string `json:"kind"`
	Item string `json:"item"`
}

// Stack is a LIFO list of import statements. The zero value is ready to use.
type Stack struct {
	items   []string
	history []Action
}

// Push adds item to the top of the stack.
func (s *Stack) Push(item string) {
	s.items = append(s.items, item)
}

// Pop removes the top item and records it so Back can restore it.
func (s *Stack) Pop() (string, error) {
	if len(s.items) == 0 {
		return "", ErrEmpty
	}
	item := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	s.history = append(s.history, Action{Kind: "pop", Item: item})
	return item, nil
}

// Back undoes the most recent pop.
func (s *Stack) Back() error {
	if len(s.history) == 0 {
		return ErrNoHistory
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	if last.Kind == "pop" {
		s.items = append(s.items, last.Item)
	}
	return nil
}

// Clear drops all items and history.
func (s *Stack) Clear() {
	s.items = nil
	s.history = nil
}

// Items returns a copy of the stack, bottom first.
func (s *Stack) Items() []string {
	return append([]string(nil), s.items...)
}

// History returns a copy of the recorded actions, oldest first.
func (s *Stack) History() []Action {
	return append([]Action(nil), s.history...)
}

// Len returns the number of items on the stack.
func (s *Stack) Len() int { return len(s.items) }

// PushLine validates an import statement and pushes it, one entry per
// imported name for from-imports.
func (s *Stack) PushLine(line string) error {
	line = strings.TrimSpace(line)
	if !Validate(line) {
		return ErrInvalidImport
	}
	for _, item := range Expand(line) {
		s.Push(item)
	}
	return nil
}

// Validate reports whether line is "from a.b import x, y" or "import a.b".
func Validate(line string) bool {
	return importStatement.MatchString(strings.TrimSpace(line))
}

// Expand turns "from m import a, b" into "from m import a" and
// "from m import b". Other statements are returned unchanged.
func Expand(line string) []string {
	line = strings.TrimSpace(line)
	before, after, ok := strings.Cut(line, " import ")
	if !ok || strings.TrimSpace(before) == "" {
		return []string{line}
	}
	base := strings.TrimSpace(before) + " import"
	var out []string
	for _, name := range strings.Split(after, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, base+" "+name)
		}
	}
	if len(out) == 0 {
		return []string{line}
	}
	return out
}

// Seed returns the import statements found in source, skipping decorators
// and lines that do not validate.
func Seed(source string, l lang.Language) []string {
	var out []string
	for _, line := range strings.Split(source, "\n") {
		if !l.IsImport(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") || !Validate(trimmed) {
			continue
		}
		out = append(out, Expand(trimmed)...)
	}
	return out
}
