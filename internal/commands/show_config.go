package plannerviz

import (
	"github.com/k0kubun/pp"
	"github.com/mwiater/plannerviz/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the config file is loaded properly and overridden by environment variables and flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), *cfg)
		if DebugEnabled() {
			pp.Fprintln(cmd.OutOrStdout(), cfg)
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
