package dataset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/autoworker/internal/bundle"
)

func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("dataset is not a JSON array: %v\n%s", err, data)
	}
	return out
}

func sampleBundle() bundle.Bundle {
	return bundle.Bundle{
		TestCode:   "def test_add():\n    assert add(1, 2) == 3",
		EntityCode: "def add(a, b):\n    return a + b",
		Framework:  "pytest",
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRecord(sampleBundle(), false)
	if r.Prompt != "Write a unit test using pytest framework for this code" {
		t.Fatalf("unexpected prompt %q", r.Prompt)
	}
	if r.Code != sampleBundle().EntityCode || r.Result != sampleBundle().TestCode {
		t.Fatalf("code/result swapped: %+v", r)
	}
	if r.Framework != "pytest" {
		t.Fatalf("unexpected framework %q", r.Framework)
	}
}

func TestUnescape(t *testing.T) {
	in := `print("a\nb")` + ` \\ path`
	if got := Unescape(in); got != "print(\"a\nb\") \\ path" {
		t.Fatalf("Unescape = %q", got)
	}
	b := sampleBundle()
	b.EntityCode = `x = 1\ny = 2`
	if r := NewRecord(b, true); r.Code != "x = 1\ny = 2" {
		t.Fatalf("expected unescaped code, got %q", r.Code)
	}
	if r := NewRecord(b, false); r.Code != `x = 1\ny = 2` {
		t.Fatalf("expected raw code, got %q", r.Code)
	}
}

func TestAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pytest_jsons.txt")
	a := Appender{Path: path, Lock: true}

	count, err := a.Append(NewRecord(sampleBundle(), false))
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	records := readRecords(t, path)
	if len(records) != 1 {
		t.Fatalf("expected array of length 1, got %d", len(records))
	}
	for _, key := range []string{"prompt", "framework", "code", "result"} {
		if _, ok := records[0][key]; !ok {
			t.Fatalf("record missing %q: %v", key, records[0])
		}
	}
	if len(records[0]) != 4 {
		t.Fatalf("expected exactly four fields, got %v", records[0])
	}
}

func TestAppendPreservesExistingOrderAndFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	existing := `[{"zeta": 1, "alpha": "first"}]`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	b := sampleBundle()
	b.EntityCode = "def cmp(a, b):\n    return a < b and b > 0 & 1  # привет"
	if _, err := (Appender{Path: path}).Append(NewRecord(b, false)); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	content := string(data)
	if strings.Index(content, `"zeta"`) > strings.Index(content, `"alpha"`) {
		t.Fatalf("existing key order should be preserved:\n%s", content)
	}
	if !strings.Contains(content, "a < b and b > 0 & 1") || !strings.Contains(content, "привет") {
		t.Fatalf("expected unescaped HTML and non-ASCII text:\n%s", content)
	}
	if !strings.Contains(content, "\n    {\n        \"zeta\": 1,") {
		t.Fatalf("expected four-space indentation:\n%s", content)
	}
	if strings.HasSuffix(content, "\n") {
		t.Fatalf("expected no trailing newline")
	}
	if got := len(readRecords(t, path)); got != 2 {
		t.Fatalf("expected 2 records, got %d", got)
	}
}

func TestAppendWrapsNonArrayRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"prompt":"p","framework":"f","code":"c","result":"r"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	count, err := (Appender{Path: path}).Append(NewRecord(sampleBundle(), false))
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected object root wrapped plus new record, got %d", count)
	}
	records := readRecords(t, path)
	if records[0]["prompt"] != "p" {
		t.Fatalf("expected original object first, got %v", records[0])
	}
}

func TestAppendRecoversFromDecodeError(t *testing.T) {
	for name, content := range map[string]string{
		"garbage": "{not json",
		"empty":   "",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			count, err := (Appender{Path: path}).Append(NewRecord(sampleBundle(), false))
			if err != nil {
				t.Fatalf("Append error: %v", err)
			}
			if count != 1 {
				t.Fatalf("expected fresh array of 1, got %d", count)
			}
		})
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	b := sampleBundle()
	b.Framework = ""
	if _, err := (Appender{Path: path}).Append(NewRecord(b, false)); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("dataset should not be created for invalid record")
	}
}

func TestAppendDocumentMalformed(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "input.txt")
	out := filepath.Join(dir, "data.json")
	if err := os.WriteFile(doc, []byte("test\n/////\nentities"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, _, err := (Appender{Path: out}).AppendDocument(doc, false)
	if !errors.Is(err, bundle.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no record should be written for malformed input")
	}
}

func TestAppendDocument(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "input.txt")
	out := filepath.Join(dir, "data.json")
	if err := os.WriteFile(doc, []byte(sampleBundle().Document()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rec, count, err := (Appender{Path: out}).AppendDocument(doc, false)
	if err != nil {
		t.Fatalf("AppendDocument error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}
	if rec.Result != sampleBundle().TestCode || rec.Code != sampleBundle().EntityCode {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if _, err := (Appender{Path: good}).Append(NewRecord(sampleBundle(), false)); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if n, err := ValidateFile(good); err != nil || n != 1 {
		t.Fatalf("ValidateFile(good) = %d, %v", n, err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"prompt": "p"}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ValidateFile(bad); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}

	notArray := filepath.Join(dir, "object.json")
	if err := os.WriteFile(notArray, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ValidateFile(notArray); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}
