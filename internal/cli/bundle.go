package autoworker

import (
	"github.com/mwiater/autoworker/internal/pipeline"
	"github.com/spf13/cobra"
)

// bundleCmd implements 'bundle', which rewrites a test file into a
// test/entities/framework document without touching the dataset.
var bundleCmd = &cobra.Command{
	Use:   "bundle [test-file]",
	Short: "Rewrite a test file into a three-part bundle document",
	Long: `The 'bundle' command scans the test file for entity names, concatenates the matching
entity sources, removes duplicate definitions and overwrites the test file with
"<test>\n/////\n<entities>\n/////\n<framework>".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := pipeline.Bundle(configFor(args))
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), sum)
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
}
