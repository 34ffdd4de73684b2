// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mwiater/plannerviz/internal/chart"
	"github.com/mwiater/plannerviz/internal/output"
	"github.com/mwiater/plannerviz/internal/results"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/plannerviz.yaml"
	// EnvPrefix prefixes environment overrides, e.g. PLANNERVIZ_RESULTS_DIR.
	EnvPrefix = "PLANNERVIZ"
	// DefaultResultsDir is scanned for result documents when none is configured.
	DefaultResultsDir = "results"
	// DefaultAggregateName names the results plot file.
	DefaultAggregateName = "all_models_comparison"
	// DefaultTitle is the suptitle of the results figure.
	DefaultTitle = "Simulation Result Summary (All Models)"
	// defaultLogFile is used when log_file is not set.
	defaultLogFile = "plannerviz.log"
)

// Layouts of the results figure.
const (
	LayoutAuto   = "auto"
	LayoutDual   = "dual"
	LayoutPanels = "panels"
)

// Config represents the top-level application configuration.
type Config struct {
	ResultsDir      string            `mapstructure:"results_dir"`
	Metrics         []string          `mapstructure:"metrics"`
	OutputPath      string            `mapstructure:"output_path"`
	AggregateName   string            `mapstructure:"aggregate_name"`
	Title           string            `mapstructure:"title"`
	Layout          string            `mapstructure:"layout"`
	Palette         map[string]string `mapstructure:"palette"`
	LogScaleMetrics []string          `mapstructure:"log_scale_metrics"`
	Charts          []chart.ChartSpec `mapstructure:"charts"`
	StrictSchema    bool              `mapstructure:"strict_schema"`
	// Width and Height are in inches; zero selects the layout's default.
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	// DPI of zero selects 100 for results and the dataset's own value for baselines.
	DPI        int    `mapstructure:"dpi"`
	Dataset    string `mapstructure:"dataset"`
	LogFile    string `mapstructure:"log_file"`
	Debug      bool   `mapstructure:"debug"`
	ConfigPath string `mapstructure:"-"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		ResultsDir:    DefaultResultsDir,
		Metrics:       slices.Clone(results.DefaultMetrics),
		AggregateName: DefaultAggregateName,
		Title:         DefaultTitle,
		Layout:        LayoutAuto,
	}
}

// SetDefaults registers every configuration key on v, so environment
// variables are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("results_dir", d.ResultsDir)
	v.SetDefault("metrics", d.Metrics)
	v.SetDefault("output_path", "")
	v.SetDefault("aggregate_name", d.AggregateName)
	v.SetDefault("title", d.Title)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("palette", map[string]string{})
	v.SetDefault("log_scale_metrics", []string{})
	v.SetDefault("strict_schema", false)
	v.SetDefault("width", 0.0)
	v.SetDefault("height", 0.0)
	v.SetDefault("dpi", 0)
	v.SetDefault("dataset", "")
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
}

// ConfigureEnv makes v read PLANNERVIZ_* environment variables.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration file at path (or DefaultConfigPath) into a
// fresh viper instance. A missing default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	ConfigureEnv(v)

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	v.SetConfigFile(path)
	loaded, err := ReadConfig(v, explicit)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(v)
	if err != nil {
		return Config{}, err
	}
	if loaded {
		cfg.ConfigPath = v.ConfigFileUsed()
	}
	return cfg, nil
}

// ReadConfig reads v's config file and reports whether one was found. A
// missing file is only an error when the path was requested explicitly.
func ReadConfig(v *viper.Viper, explicit bool) (bool, error) {
	err := v.ReadInConfig()
	if err == nil {
		return true, nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return false, fmt.Errorf("no configuration file found at %q", v.ConfigFileUsed())
		}
		return false, nil
	}
	return false, fmt.Errorf("could not read config file %q: %w", v.ConfigFileUsed(), err)
}

// Decode unmarshals v into a validated Config.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode configuration: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Layout = strings.ToLower(strings.TrimSpace(c.Layout))
	if c.Layout == "" {
		c.Layout = LayoutAuto
	}
	var metrics []string
	for _, m := range c.Metrics {
		if m = strings.TrimSpace(m); m != "" {
			metrics = append(metrics, m)
		}
	}
	c.Metrics = metrics
	if strings.TrimSpace(c.AggregateName) == "" {
		c.AggregateName = DefaultAggregateName
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error
	if len(c.Metrics) == 0 {
		errs = append(errs, errors.New("metrics must name at least one metric"))
	}
	seen := make(map[string]struct{}, len(c.Metrics))
	for _, m := range c.Metrics {
		if _, dup := seen[m]; dup {
			errs = append(errs, fmt.Errorf("metric %q is listed twice", m))
		}
		seen[m] = struct{}{}
	}
	switch c.Layout {
	case LayoutAuto, LayoutPanels:
	case LayoutDual:
		if len(c.Metrics) != 2 {
			errs = append(errs, fmt.Errorf("layout %q needs exactly two metrics, got %d", LayoutDual, len(c.Metrics)))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown layout %q (want auto, dual or panels)", c.Layout))
	}
	if strings.ContainsAny(c.AggregateName, `/\`) {
		errs = append(errs, fmt.Errorf("aggregate_name %q must not contain a path separator", c.AggregateName))
	}
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, errors.New("width and height must not be negative"))
	}
	if c.DPI < 0 {
		errs = append(errs, errors.New("dpi must not be negative"))
	}
	for name, hex := range c.Palette {
		if _, err := chart.ParseHexColor(hex); err != nil {
			errs = append(errs, fmt.Errorf("palette entry %q: %w", name, err))
		}
	}
	for i, cs := range c.Charts {
		if strings.TrimSpace(cs.Metric) == "" {
			errs = append(errs, fmt.Errorf("chart %d has no metric", i))
		}
	}
	return errors.Join(errs...)
}

// ResolvedLayout returns the concrete layout: auto means dual-axis for
// exactly two metrics and panels otherwise.
func (c Config) ResolvedLayout() string {
	if c.Layout == LayoutAuto || c.Layout == "" {
		if len(c.Metrics) == 2 {
			return LayoutDual
		}
		return LayoutPanels
	}
	return c.Layout
}

// ChartSpecs returns one ChartSpec per metric in metric order. Entries in
// Charts override the derived title, label and scale.
func (c Config) ChartSpecs() []chart.ChartSpec {
	out := make([]chart.ChartSpec, len(c.Metrics))
	for i, m := range c.Metrics {
		spec := chart.DefaultChartSpec(m, slices.Contains(c.LogScaleMetrics, m))
		for _, override := range c.Charts {
			if override.Metric != m {
				continue
			}
			if override.Title != "" {
				spec.Title = override.Title
			}
			if override.YLabel != "" {
				spec.YLabel = override.YLabel
			}
			spec.LogScale = spec.LogScale || override.LogScale
		}
		out[i] = spec
	}
	return out
}

// PlotPath returns where the results figure is written.
func (c Config) PlotPath() string {
	if p := strings.TrimSpace(c.OutputPath); p != "" {
		return p
	}
	return output.PlotPath(c.ResultsDir, c.AggregateName)
}

// DatasetOutputPath places a dataset's fixed filename under output_path when
// that names a directory-like value, or returns the filename unchanged.
func (c Config) DatasetOutputPath(filename string) string {
	if p := strings.TrimSpace(c.OutputPath); p != "" {
		if strings.EqualFold(filepath.Ext(p), ".png") {
			return p
		}
		return filepath.Join(p, filename)
	}
	return filename
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}
