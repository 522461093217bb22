// internal/bundle/document.go
// Package bundle assembles a test, the entity code it references and a
// framework name into a three-part document.
package bundle

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the three parts of a persisted bundle.
const Delimiter = "/////"

// ErrMalformed is returned when a document does not have exactly three parts.
var ErrMalformed = errors.New("malformed bundle document")

// Bundle is a test together with the entity code it uses.
type Bundle struct {
	TestCode   string `json:"testCode"`
	EntityCode string `json:"entityCode"`
	Framework  string `json:"framework"`
}

// Document renders the bundle as "<test>\n/////\n<entities>\n/////\n<framework>".
// The test code is trimmed; the other parts are written as given.
func (b Bundle) Document() string {
	return strings.TrimSpace(b.TestCode) + "\n" + Delimiter + "\n" + b.EntityCode + "\n" + Delimiter + "\n" + b.Framework
}

// ParseDocument splits a three-part document and trims each part.
func ParseDocument(doc string) (Bundle, error) {
	parts := strings.Split(doc, Delimiter)
	if len(parts) != 3 {
		return Bundle{}, fmt.Errorf("%w: expected 3 %q-delimited parts, got %d", ErrMalformed, Delimiter, len(parts))
	}
	return Bundle{
		TestCode:   strings.TrimSpace(parts[0]),
		EntityCode: strings.TrimSpace(parts[1]),
		Framework:  strings.TrimSpace(parts[2]),
	}, nil
}
