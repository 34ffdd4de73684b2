// internal/commands/plot_results.go
package plannerviz

import (
	"github.com/mwiater/plannerviz/internal/logging"
	"github.com/mwiater/plannerviz/internal/pipeline"
	"github.com/spf13/cobra"
)

// plotResultsCmd plots every result document in a directory.
var plotResultsCmd = &cobra.Command{
	Use:   "results [dir]",
	Short: "Plot all model results in a directory",
	Long: `Read every *.json document in the results directory, normalize the
configured metrics, print a summary table and save the comparison plot as
<dir>/<aggregate-name>_plot.png. Two metrics give a dual-axis chart, any
other number gives one panel per metric.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *GetConfig()
		if len(args) == 1 {
			cfg.ResultsDir = args[0]
		}
		runner := pipeline.New(cfg, nil, logging.NewReporter(cmd.OutOrStdout()))
		_, err := runner.Results()
		return err
	},
}

func init() {
	plotCmd.AddCommand(plotResultsCmd)
}
