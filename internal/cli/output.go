package autoworker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"

	"github.com/mwiater/autoworker/internal/bundle"
	"github.com/mwiater/autoworker/internal/dataset"
	"github.com/mwiater/autoworker/internal/entity"
	"github.com/mwiater/autoworker/internal/importstack"
	"github.com/mwiater/autoworker/internal/lang"
	"github.com/mwiater/autoworker/internal/pipeline"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	warningText = color.New(color.FgYellow).SprintFunc()
	failedText  = color.New(color.FgRed).SprintFunc()
	labelText   = color.New(color.Bold).SprintFunc()
)

// errorLabel names the error category shown in front of a failure message.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return "not found"
	case errors.Is(err, bundle.ErrMalformed):
		return "malformed input"
	case errors.Is(err, dataset.ErrInvalidRecord):
		return "invalid record"
	case errors.Is(err, dataset.ErrDecode):
		return "decode error"
	case errors.Is(err, lang.ErrUnknownLanguage):
		return "invalid configuration"
	case errors.Is(err, importstack.ErrInvalidImport):
		return "invalid import"
	default:
		return "error"
	}
}

func printError(out io.Writer, err error) {
	fmt.Fprintf(out, "%s %v\n", failedText("["+errorLabel(err)+"]"), err)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// debugDump pretty-prints v when --debug is set.
func debugDump(out io.Writer, label string, v any) {
	fmt.Fprintf(out, "%s\n", labelText("[debug] "+label))
	_, _ = pp.Fprintln(out, v)
}

// printSummary writes one pipeline summary as colored text or JSON.
func printSummary(out io.Writer, sum pipeline.Summary) error {
	if JSONModeEnabled() {
		return writeJSON(out, sum)
	}

	prefix := ""
	if sum.Case > 0 {
		prefix = fmt.Sprintf("case %d: ", sum.Case)
	}
	if sum.Error != "" {
		fmt.Fprintf(out, "%s%s %s\n", prefix, failedText("failed:"), sum.Error)
		return nil
	}
	if sum.Bundled {
		fmt.Fprintf(out, "%s%s %s (entities: %s)\n", prefix, successText("bundled"), sum.TestFile, joinOrNone(sum.Found))
	}
	if len(sum.Missing) > 0 {
		fmt.Fprintf(out, "%s%s %s\n", prefix, warningText("missing entity files:"), strings.Join(sum.Missing, ", "))
	}
	if len(sum.Dropped) > 0 {
		fmt.Fprintf(out, "%s%s %s\n", prefix, warningText("dropped duplicate definitions:"), strings.Join(sum.Dropped, ", "))
	}
	if sum.Appended {
		fmt.Fprintf(out, "%s%s %s (%d records)\n", prefix, successText("appended to"), sum.Output, sum.Records)
	}
	if DebugEnabled() {
		debugDump(out, "bundle", sum.Bundle)
	}
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
