// internal/commands/plot_baselines.go
package plannerviz

import (
	"github.com/mwiater/plannerviz/internal/dataset"
	"github.com/mwiater/plannerviz/internal/logging"
	"github.com/mwiater/plannerviz/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// plotBaselinesCmd plots a benchmark dataset as one panel per metric.
var plotBaselinesCmd = &cobra.Command{
	Use:   "baselines [dataset]",
	Short: "Plot a planner-vs-baselines benchmark dataset",
	Long: `Render a fixed benchmark dataset with one panel per metric and one bar
per baseline in every bucket. Without a dataset file the built-in Sailor
comparison is plotted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *GetConfig()
		fs := afero.NewOsFs()
		ds, err := loadDataset(fs, datasetPath(cfg.Dataset, args))
		if err != nil {
			return err
		}
		runner := pipeline.New(cfg, fs, logging.NewReporter(cmd.OutOrStdout()))
		_, err = runner.Baselines(ds)
		return err
	},
}

func init() {
	plotCmd.AddCommand(plotBaselinesCmd)
}

func datasetPath(configured string, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return configured
}

func loadDataset(fs afero.Fs, path string) (dataset.Dataset, error) {
	if path == "" {
		return dataset.Default()
	}
	return dataset.Load(fs, path)
}
