package autoworker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mwiater/autoworker/internal/entity"
	"github.com/mwiater/autoworker/internal/splitter"
	"github.com/mwiater/autoworker/internal/util"
	"github.com/spf13/cobra"
)

// splitCase is one test case reported by 'split'.
type splitCase struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Lines int    `json:"lines"`
	Code  string `json:"code"`
}

// splitCmd implements 'split', which previews how run-all will cut a cases file.
var splitCmd = &cobra.Command{
	Use:   "split [cases-file]",
	Short: "Preview the test cases found in a multi-test file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFor(nil)
		path := cfg.CasesFile
		if len(args) > 0 && args[0] != "" {
			path = args[0]
		}
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("a cases file is required (argument or --casesFile)")
		}
		language, err := cfg.Language()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("cases file %q: %w", path, entity.ErrNotFound)
			}
			return err
		}

		var cases []splitCase
		for i, code := range splitter.Split(string(data), language) {
			cases = append(cases, splitCase{
				Index: i + 1,
				Title: util.FirstLine(code),
				Lines: strings.Count(strings.TrimRight(code, "\n"), "\n") + 1,
				Code:  code,
			})
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, cases)
		}
		fmt.Fprintf(out, "%s %d test case(s) in %s\n", successText("found"), len(cases), path)
		for _, c := range cases {
			fmt.Fprintf(out, "  %3d  %s  (%d lines)\n", c.Index, util.TruncateRunes(c.Title, 60), c.Lines)
			if DebugEnabled() {
				fmt.Fprintln(out, util.TruncateToWidth(strings.TrimRight(c.Code, "\n"), 100))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
