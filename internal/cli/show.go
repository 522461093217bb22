package autoworker

import (
	"github.com/spf13/cobra"
)

// showCmd groups read-only inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show information such as configuration",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
