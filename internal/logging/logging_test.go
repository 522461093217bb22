package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "autoworker.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogStage("bundle", "input.txt", map[string]any{"found": 2})
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[BUNDLE] subject=input.txt found=2") {
		t.Fatalf("expected LogStage content, got: %s", content)
	}
}

func TestBuildStageMessageDefaults(t *testing.T) {
	msg := buildStageMessage(" append ", " ", map[string]any{
		"names": []string{"a", "b"},
		"err":   errors.New("boom"),
		"ok":    true,
	})
	if !strings.HasPrefix(msg, "[APPEND] subject=unknown") {
		t.Fatalf("expected uppercased stage and default subject, got: %s", msg)
	}
	if !strings.Contains(msg, "err=boom names=[\"a\",\"b\"] ok=true") {
		t.Fatalf("expected sorted fields, got: %s", msg)
	}
	if got := buildStageMessage("", "x", nil); got != "[PIPELINE] subject=x" {
		t.Fatalf("unexpected default stage message: %s", got)
	}
}

func TestFormatValueVariants(t *testing.T) {
	if got := formatValue(nil); got != "null" {
		t.Fatalf("nil value: %s", got)
	}
	if got := formatValue(" "); got != `""` {
		t.Fatalf("empty string value: %s", got)
	}
	if got := formatValue([]byte("hi")); got != "hi" {
		t.Fatalf("byte value: %s", got)
	}
	if got := formatValue(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer value: %s", got)
	}
	if got := formatValue(3); got != "3" {
		t.Fatalf("int value: %s", got)
	}
}
