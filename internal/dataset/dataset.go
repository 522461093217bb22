// internal/dataset/dataset.go
// Package dataset turns bundles into training records and appends them to a
// JSON array file.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/mwiater/autoworker/internal/bundle"
	"github.com/mwiater/autoworker/internal/entity"
	"github.com/mwiater/autoworker/internal/logging"
	"github.com/mwiater/autoworker/internal/util"
)

// PromptTemplate is filled with the framework name to build a record prompt.
const PromptTemplate = "Write a unit test using %s framework for this code"

// ErrDecode marks an existing dataset file that is not valid JSON. Append
// recovers from it by starting a new array, so it only appears in the log.
var ErrDecode = errors.New("dataset decode error")

// Record is one training example.
type Record struct {
	Prompt    string `json:"prompt"`
	Framework string `json:"framework"`
	Code      string `json:"code"`
	Result    string `json:"result"`
}

// NewRecord builds a record from a bundle: the entity code is the input and
// the test code is the expected result. With unescape, literal "\\" and "\n"
// sequences in both codes are turned into a backslash and a newline.
func NewRecord(b bundle.Bundle, unescape bool) Record {
	code, result := b.EntityCode, b.TestCode
	if unescape {
		code, result = Unescape(code), Unescape(result)
	}
	return Record{
		Prompt:    fmt.Sprintf(PromptTemplate, b.Framework),
		Framework: b.Framework,
		Code:      code,
		Result:    result,
	}
}

// Unescape replaces escaped backslashes and escaped newlines.
func Unescape(code string) string {
	code = strings.ReplaceAll(code, `\\`, `\`)
	return strings.ReplaceAll(code, `\n`, "\n")
}

// Appender appends records to the dataset file at Path.
type Appender struct {
	Path string
	// Lock holds an advisory lock on Path+".lock" for the read-modify-write.
	Lock bool
}

// Append adds r to the end of the dataset and returns the new record count.
// The whole file is rewritten through a temp file and rename.
func (a Appender) Append(r Record) (int, error) {
	if strings.TrimSpace(a.Path) == "" {
		return 0, fmt.Errorf("dataset path is required")
	}
	if err := ValidateRecord(r); err != nil {
		return 0, err
	}

	if a.Lock {
		if dir := filepath.Dir(a.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return 0, fmt.Errorf("create dataset directory: %w", err)
			}
		}
		fileLock := flock.New(a.Path + ".lock")
		if err := fileLock.Lock(); err != nil {
			return 0, fmt.Errorf("lock dataset %s: %w", a.Path, err)
		}
		defer func() { _ = fileLock.Unlock() }()
	}

	items, err := Load(a.Path)
	if err != nil {
		return 0, err
	}

	raw, err := marshalRecord(r)
	if err != nil {
		return 0, err
	}
	items = append(items, raw)

	data, err := encode(items)
	if err != nil {
		return 0, err
	}
	if err := util.WriteFileAtomic(a.Path, data); err != nil {
		return 0, fmt.Errorf("write dataset: %w", err)
	}

	logging.LogStage("append", a.Path, map[string]any{
		"framework": r.Framework,
		"records":   len(items),
	})
	return len(items), nil
}

// AppendDocument parses the three-part document at docPath and appends the
// resulting record. A malformed document leaves the dataset untouched.
func (a Appender) AppendDocument(docPath string, unescape bool) (Record, int, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, 0, fmt.Errorf("bundle document %q: %w", docPath, entity.ErrNotFound)
		}
		return Record{}, 0, fmt.Errorf("read bundle document %q: %w", docPath, err)
	}
	b, err := bundle.ParseDocument(string(data))
	if err != nil {
		return Record{}, 0, fmt.Errorf("%s: %w", docPath, err)
	}
	rec := NewRecord(b, unescape)
	count, err := a.Append(rec)
	if err != nil {
		return Record{}, 0, err
	}
	return rec, count, nil
}

// Load reads the existing dataset items. A missing file yields no items, a
// non-array root becomes a single item and undecodable content is logged
// and treated as an empty array.
func Load(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		logging.LogEvent("[DATASET] %v: %s: %v; starting a new array", ErrDecode, path, err)
		return nil, nil
	}

	trimmed := bytes.TrimSpace(root)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			logging.LogEvent("[DATASET] %v: %s: %v; starting a new array", ErrDecode, path, err)
			return nil, nil
		}
		return items, nil
	}
	return []json.RawMessage{trimmed}, nil
}

// ValidateFile checks an existing dataset file against the dataset schema.
func ValidateFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("dataset %q: %w", path, entity.ErrNotFound)
		}
		return 0, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if err := ValidateDocument(data); err != nil {
		return len(items), err
	}
	return len(items), nil
}

// encode renders items as a four-space indented JSON array without HTML escaping.
func encode(items []json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalRecord(r Record) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
