package autoworker

import (
	"github.com/mwiater/autoworker/internal/pipeline"
	"github.com/spf13/cobra"
)

// runCmd implements 'run', which bundles a test file and appends it to the dataset.
var runCmd = &cobra.Command{
	Use:   "run [test-file]",
	Short: "Bundle a test file and append it to the dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := pipeline.Run(configFor(args))
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), sum)
	},
}

// runAllCmd implements 'run-all', which splits a file of many tests into
// cases and runs each one through the test file.
var runAllCmd = &cobra.Command{
	Use:   "run-all [cases-file]",
	Short: "Split a multi-test file and run every case",
	Long:  `The 'run-all' command splits the cases file into individual tests, writes each one to the configured test file and runs the bundle and append steps for it. The first failing case stops the batch.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFor(nil)
		if len(args) > 0 && args[0] != "" {
			cfg.CasesFile = args[0]
		}
		sums, err := pipeline.RunAll(cfg)
		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			if jsonErr := writeJSON(out, sums); jsonErr != nil {
				return jsonErr
			}
			return err
		}
		for _, sum := range sums {
			if perr := printSummary(out, sum); perr != nil {
				return perr
			}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runAllCmd)
}
