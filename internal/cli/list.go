package autoworker

import (
	"github.com/spf13/cobra"
)

// listCmd groups listing commands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List commands and entities",
}

func init() {
	rootCmd.AddCommand(listCmd)
}
