package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Output formats understood by the CLI.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatOpenAPI = "openapi"
)

// Config holds CLI settings resolved from redcap.yaml, REDCAP_* variables and
// flags, in increasing precedence.
type Config struct {
	Dictionary  string        `mapstructure:"dictionary"`
	Records     string        `mapstructure:"records"`
	Fields      []string      `mapstructure:"fields"`
	Format      string        `mapstructure:"format"`
	IDField     string        `mapstructure:"id_field"`
	Interactive bool          `mapstructure:"interactive"`
	Log         LogConfig     `mapstructure:"log"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var defaults = map[string]any{
	"dictionary":      "",
	"records":         "",
	"fields":          []string{},
	"format":          FormatJSON,
	"id_field":        "record_id",
	"interactive":     false,
	"log.level":       "warn",
	"log.format":      "console",
	"metrics.enabled": false,
}

// Load reads configuration. An explicit path must exist; without one,
// redcap.yaml is looked up in the working directory and is optional.
// overrides are applied last, keyed like the YAML document ("log.level").
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("redcap")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("REDCAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) {
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	fields := cfg.Fields[:0]
	for _, name := range cfg.Fields {
		for _, part := range strings.Split(name, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				fields = append(fields, trimmed)
			}
		}
	}
	cfg.Fields = fields
}

// Validate reports settings the CLI cannot run with.
func (c *Config) Validate() error {
	if c.Dictionary == "" {
		return errors.New("config: dictionary path is required")
	}
	if !slices.Contains([]string{FormatJSON, FormatText, FormatOpenAPI}, c.Format) {
		return fmt.Errorf("config: unsupported format %q", c.Format)
	}
	if c.Format != FormatOpenAPI && c.Records == "" {
		return errors.New("config: records path is required")
	}
	return nil
}
