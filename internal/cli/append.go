package autoworker

import (
	"github.com/mwiater/autoworker/internal/pipeline"
	"github.com/spf13/cobra"
)

// appendCmd implements 'append', which turns a bundle document into a
// dataset record.
var appendCmd = &cobra.Command{
	Use:   "append [bundle-file]",
	Short: "Append a bundle document to the dataset",
	Long:  `The 'append' command parses a three-part bundle document and appends a {prompt, framework, code, result} record to the dataset file. Malformed documents are rejected without writing.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := pipeline.Append(configFor(args))
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), sum)
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)
}
