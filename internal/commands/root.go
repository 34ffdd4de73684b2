// internal/commands/root.go
package plannerviz

import (
	"fmt"
	"os"

	"github.com/mwiater/plannerviz/internal/appconfig"
	"github.com/mwiater/plannerviz/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// flagKeys maps configuration keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"results_dir":       "results-dir",
	"metrics":           "metrics",
	"output_path":       "output",
	"aggregate_name":    "aggregate-name",
	"title":             "title",
	"layout":            "layout",
	"log_scale_metrics": "log-scale",
	"strict_schema":     "strict-schema",
	"width":             "width",
	"height":            "height",
	"dpi":               "dpi",
	"dataset":           "dataset",
	"log_file":          "log-file",
	"debug":             "debug",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "plannerviz",
	Short:         "plannerviz: plot planner results and baseline comparisons",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// configLoaded records whether the last initConfig call read a file.
var configLoaded bool

// Execute runs the root command and returns the process exit code.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() int {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		logging.NewReporter(rootCmd.ErrOrStderr()).Error("%v", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}

		cfg, err := appconfig.Decode(viper.GetViper())
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if configLoaded {
			cfg.ConfigPath = viper.ConfigFileUsed()
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.LogEvent("plannerviz %s: %s", appVersion, cmd.CommandPath())
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (YAML or JSON)")

	pf.String("results-dir", appconfig.DefaultResultsDir, "directory of *.json result documents")
	pf.StringSlice("metrics", nil, "metrics to plot, in order (default throughput,cost_per_iteration)")
	pf.String("output", "", "output image path (results) or directory (baselines)")
	pf.String("aggregate-name", appconfig.DefaultAggregateName, "name of the results plot file, without _plot.png")
	pf.String("title", appconfig.DefaultTitle, "figure title for results plots")
	pf.String("layout", appconfig.LayoutAuto, "results layout: auto, dual or panels")
	pf.StringSlice("log-scale", nil, "metrics drawn on a log Y axis")
	pf.Bool("strict-schema", false, "skip documents whose metric values are not numbers")
	pf.Float64("width", 0, "figure width in inches (0 = layout default)")
	pf.Float64("height", 0, "figure height in inches (0 = layout default)")
	pf.Int("dpi", 0, "image resolution (0 = 100 for results, dataset value for baselines)")
	pf.String("dataset", "", "baseline dataset file (YAML or JSON); empty uses the built-in one")
	pf.String("log-file", "", "path to the log file")
	pf.Bool("debug", false, "print debug dumps of loaded data and configuration")
}

// initConfig binds flags and environment variables and reads the config
// file. The default config file is optional; an explicit one must exist.
func initConfig(cmd *cobra.Command) error {
	v := viper.GetViper()
	appconfig.SetDefaults(v)
	appconfig.ConfigureEnv(v)
	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	path, explicit := cfgFile, cmd.Flags().Changed("config")
	if env := os.Getenv(appconfig.EnvPrefix + "_CONFIG"); env != "" && !explicit {
		path, explicit = env, true
	}
	v.SetConfigFile(path)
	loaded, err := appconfig.ReadConfig(v, explicit)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configLoaded = loaded
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
