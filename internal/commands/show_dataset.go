package plannerviz

import (
	"fmt"
	"strings"

	"github.com/mwiater/plannerviz/internal/results"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// showDatasetCmd prints a benchmark dataset as a table.
var showDatasetCmd = &cobra.Command{
	Use:   "dataset [file]",
	Short: "Show a baseline dataset",
	Long:  `Print the title, buckets and per-baseline values of a dataset file, or of the built-in dataset when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(afero.NewOsFs(), datasetPath(GetConfig().Dataset, args))
		if err != nil {
			return err
		}
		set, err := ds.ResultSet(results.Normalizer{})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", ds.Title)
		fmt.Fprintf(out, "%s: %s\n", ds.BucketLabel, strings.Join(ds.Buckets, ", "))
		fmt.Fprintln(out, results.SummaryTable(set, ds.Metrics()))
		if DebugEnabled() {
			results.Dump(out, set)
		}
		return nil
	},
}

func init() {
	showCmd.AddCommand(showDatasetCmd)
}
