package importstack

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mwiater/autoworker/internal/lang"
)

func TestPushPopBack(t *testing.T) {
	var s Stack
	if _, err := s.Pop(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if err := s.Back(); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}

	s.Push("import os")
	s.Push("import sys")
	item, err := s.Pop()
	if err != nil || item != "import sys" {
		t.Fatalf("Pop = %q, %v", item, err)
	}
	if !reflect.DeepEqual(s.History(), []Action{{Kind: "pop", Item: "import sys"}}) {
		t.Fatalf("unexpected history %v", s.History())
	}
	if err := s.Back(); err != nil {
		t.Fatalf("Back error: %v", err)
	}
	if !reflect.DeepEqual(s.Items(), []string{"import os", "import sys"}) {
		t.Fatalf("unexpected items %v", s.Items())
	}
	if len(s.History()) != 0 {
		t.Fatalf("history should be consumed by Back")
	}

	s.Clear()
	if s.Len() != 0 || len(s.History()) != 0 {
		t.Fatalf("Clear should empty stack and history")
	}
}

func TestValidate(t *testing.T) {
	for _, line := range []string{"import os", "import os.path", "from a.b import x", "from a import x, y"} {
		if !Validate(line) {
			t.Fatalf("expected %q to validate", line)
		}
	}
	for _, line := range []string{"", "os", "from import x", "import", "from a import (x)", "import os as o s"} {
		if Validate(line) {
			t.Fatalf("expected %q to be rejected", line)
		}
	}
}

func TestExpandAndPushLine(t *testing.T) {
	got := Expand("from code_directory import MyClass, my_function")
	want := []string{"from code_directory import MyClass", "from code_directory import my_function"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	if got := Expand("from important import x"); !reflect.DeepEqual(got, []string{"from important import x"}) {
		t.Fatalf("module names containing import must survive, got %v", got)
	}
	if got := Expand("import os"); !reflect.DeepEqual(got, []string{"import os"}) {
		t.Fatalf("plain import should be kept, got %v", got)
	}

	var s Stack
	if err := s.PushLine("not an import"); !errors.Is(err, ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport, got %v", err)
	}
	if err := s.PushLine("from m import a, b"); err != nil {
		t.Fatalf("PushLine error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 items, got %v", s.Items())
	}
}

func TestSeed(t *testing.T) {
	src := "import pytest\n" +
		"from calc import add, subtract\n" +
		"\n" +
		"@pytest.fixture\n" +
		"def value():\n" +
		"    return 1\n"
	got := Seed(src, lang.Python)
	want := []string{"import pytest", "from calc import add", "from calc import subtract"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Seed = %v, want %v", got, want)
	}
}
