package autoworker

import (
	"fmt"
	"strings"

	"github.com/mwiater/autoworker/internal/dataset"
	"github.com/spf13/cobra"
)

// datasetCmd groups dataset maintenance commands.
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Dataset file utilities",
}

// datasetValidateCmd checks a dataset file against the record schema.
var datasetValidateCmd = &cobra.Command{
	Use:   "validate [dataset-file]",
	Short: "Validate a dataset file against the record schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFor(nil).OutputPath
		if len(args) > 0 && args[0] != "" {
			path = args[0]
		}
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("a dataset file is required (argument or --output)")
		}

		count, err := dataset.ValidateFile(path)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, map[string]any{"path": path, "records": count, "valid": true})
		}
		fmt.Fprintf(out, "%s %s (%d records)\n", successText("valid"), path, count)
		return nil
	},
}

func init() {
	datasetCmd.AddCommand(datasetValidateCmd)
	rootCmd.AddCommand(datasetCmd)
}
