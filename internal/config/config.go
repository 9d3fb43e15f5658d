// Package config loads command settings from a YAML file, TABLEHTML_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bjaus/tablehtml"
	"github.com/bjaus/tablehtml/internal/dataset"
)

// FileName is the config file looked up in the working directory when no
// explicit file is given.
const FileName = "tablehtml"

// EnvPrefix prefixes every environment override, e.g. TABLEHTML_DATA_DIR.
const EnvPrefix = "TABLEHTML"

type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	OutputDir string          `mapstructure:"output_dir"`
	Pattern   string          `mapstructure:"pattern"`
	LogFormat string          `mapstructure:"log_format"`
	Debug     bool            `mapstructure:"debug"`
	Color     string          `mapstructure:"color"`
	Table     TableConfig     `mapstructure:"table"`
	Preview   PreviewConfig   `mapstructure:"preview"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// TableConfig holds the renderer defaults applied to every generated table.
type TableConfig struct {
	Class      string `mapstructure:"class"`
	Sortable   bool   `mapstructure:"sortable"`
	Striped    bool   `mapstructure:"striped"`
	Responsive bool   `mapstructure:"responsive"`
}

// PreviewConfig configures terminal previews.
type PreviewConfig struct {
	Limit    int    `mapstructure:"limit"`
	Border   string `mapstructure:"border"`
	MaxWidth int    `mapstructure:"max_width"`
}

// DashboardConfig configures the combined dashboard page.
type DashboardConfig struct {
	Title string `mapstructure:"title"`
	// Open lists datasets whose sections start expanded.
	Open []string `mapstructure:"open"`
	// Colors maps a dataset name to the header color of its table.
	Colors map[string]string `mapstructure:"colors"`
	// Color is used for datasets missing from Colors.
	Color string `mapstructure:"color"`
}

// Options converts the table defaults into renderer options.
func (c TableConfig) Options() []tablehtml.Option {
	opts := []tablehtml.Option{
		tablehtml.WithSortable(c.Sortable),
		tablehtml.WithStriped(c.Striped),
		tablehtml.WithResponsive(c.Responsive),
	}
	if c.Class != "" {
		opts = append(opts, tablehtml.WithClass(c.Class))
	}
	return opts
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("output_dir", ".")
	v.SetDefault("pattern", dataset.DefaultPattern)
	v.SetDefault("log_format", "text")
	v.SetDefault("debug", false)
	v.SetDefault("color", "auto")
	v.SetDefault("table.class", "data-table")
	v.SetDefault("table.sortable", true)
	v.SetDefault("table.striped", true)
	v.SetDefault("table.responsive", true)
	v.SetDefault("preview.limit", 10)
	v.SetDefault("preview.border", "rounded")
	v.SetDefault("preview.max_width", 40)
	v.SetDefault("dashboard.title", "Data Dashboard")
	v.SetDefault("dashboard.open", []string{"key_metrics"})
	v.SetDefault("dashboard.colors", map[string]string{
		"quarterly_performance": "#4a90e2",
		"regional_performance":  "#5cb85c",
		"product_performance":   "#d9534f",
		"key_metrics":           "#8e44ad",
		"employee_data":         "#f39c12",
	})
	v.SetDefault("dashboard.color", "#6c757d")
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"data-dir":   "data_dir",
	"output-dir": "output_dir",
	"pattern":    "pattern",
	"log-format": "log_format",
	"debug":      "debug",
	"color":      "color",
}

// Load reads the configuration. An explicit file must exist; otherwise
// tablehtml.yaml in the working directory is used when present. Flags that
// appear in flagKeys and were set on the command line override file and
// environment values. flags may be nil.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
