package plannerviz

import (
	"github.com/spf13/cobra"
)

// listCmd groups listing commands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List CLI information",
}

func init() {
	rootCmd.AddCommand(listCmd)
}
