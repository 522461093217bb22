package keyword

import (
	"reflect"
	"testing"
)

func TestScanPreservesCandidateOrder(t *testing.T) {
	text := "from code_directory import my_variable, my_function, MyClass\n"
	names := []string{"MyClass", "missing", "my_function", "my_variable"}
	got := Scan(text, names, Options{})
	want := []string{"MyClass", "my_function", "my_variable"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Scan = %v, want %v", got, want)
	}
}

func TestScanSubstringMatchesInsideLongerIdentifiers(t *testing.T) {
	text := "result = compute_total(items)"
	got := Scan(text, []string{"total", "compute", "items", "item"}, Options{})
	want := []string{"total", "compute", "items", "item"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Scan = %v, want %v", got, want)
	}
}

func TestScanWordBoundary(t *testing.T) {
	text := "result = compute_total(items)\nassert total == 3"
	tests := []struct {
		name string
		want bool
	}{
		{"total", true},
		{"compute", false},
		{"compute_total", true},
		{"item", false},
		{"items", true},
		{"result", true},
		{"sert", false},
	}
	for _, tc := range tests {
		got := Scan(text, []string{tc.name}, Options{WordBoundary: true})
		if (len(got) == 1) != tc.want {
			t.Fatalf("word boundary match for %q = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestScanEmptyInputs(t *testing.T) {
	if got := Scan("", []string{"a"}, Options{}); len(got) != 0 {
		t.Fatalf("expected no matches in empty text, got %v", got)
	}
	if got := Scan("abc", nil, Options{}); len(got) != 0 {
		t.Fatalf("expected no matches for no names, got %v", got)
	}
	if got := Scan("abc", []string{""}, Options{}); len(got) != 0 {
		t.Fatalf("empty names must be ignored, got %v", got)
	}
}
