package autoworker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mwiater/autoworker/internal/entity"
	"github.com/mwiater/autoworker/internal/importstack"
	"github.com/mwiater/autoworker/internal/tui"
	"github.com/spf13/cobra"
)

// runImportStack is swapped out in tests.
var runImportStack = tui.RunImportStack

var stackNoTUI bool

// stackCmd implements 'stack', the interactive import stack editor.
var stackCmd = &cobra.Command{
	Use:   "stack [test-file]",
	Short: "Edit the import stack seeded from a test file",
	Long: `The 'stack' command collects the import statements of the test file, expands
"from m import a, b" into one statement per name and opens an editor where imports
can be pushed, popped and undone. The final stack is printed on exit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFor(args)
		language, err := cfg.Language()
		if err != nil {
			return err
		}

		stack := &importstack.Stack{}
		if strings.TrimSpace(cfg.TestFile) != "" {
			data, err := os.ReadFile(cfg.TestFile)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("test file %q: %w", cfg.TestFile, entity.ErrNotFound)
				}
				return err
			}
			for _, item := range importstack.Seed(string(data), language) {
				stack.Push(item)
			}
		}

		if !stackNoTUI {
			if err := runImportStack(stack); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, map[string]any{"imports": stack.Items(), "history": stack.History()})
		}
		if stack.Len() == 0 {
			fmt.Fprintln(out, warningText("import stack is empty"))
			return nil
		}
		fmt.Fprintln(out, labelText("Import stack:"))
		for _, item := range stack.Items() {
			fmt.Fprintf(out, "  %s\n", item)
		}
		return nil
	},
}

func init() {
	stackCmd.Flags().BoolVar(&stackNoTUI, "no-tui", false, "print the seeded stack without opening the editor")
	rootCmd.AddCommand(stackCmd)
}
