// internal/commands/plot.go
package plannerviz

import (
	"github.com/spf13/cobra"
)

// plotCmd hosts the commands that render comparison figures.
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render comparison figures",
	Long: `Load planner output and render grouped bar charts. Use 'results' for a
directory of per-model JSON documents and 'baselines' for a fixed benchmark
dataset.`,
}

func init() {
	rootCmd.AddCommand(plotCmd)
}
