// internal/commands/show.go
package plannerviz

import (
	"github.com/spf13/cobra"
)

// showCmd groups commands that print resolved inputs without plotting.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration and datasets",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
