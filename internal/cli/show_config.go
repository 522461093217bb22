// internal/cli/show_config.go
package autoworker

import (
	"github.com/mwiater/autoworker/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements 'show config', printing the merged configuration
// after config file values have been overridden by flags.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if JSONModeEnabled() {
			return writeJSON(cmd.OutOrStdout(), cfg)
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
		return nil
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
