// Package config loads tokendump configuration using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prefix of environment overrides, e.g. TOKENDUMP_LOG_LEVEL.
const EnvPrefix = "TOKENDUMP"

// Config is top level configuration.
type Config struct {
	Log LogConfig `mapstructure:"log"`
	// Dictionaries are YAML dictionary files registered next to built-in one
	Dictionaries []string `mapstructure:"dictionaries"`
	// Metrics enables decoder metrics
	Metrics bool `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string        `mapstructure:"level"`  // trace | debug | info | warn | error
	Format string        `mapstructure:"format"` // console | json
	File   FileLogConfig `mapstructure:"file"`
}

// FileLogConfig configures rotating log file.
type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads configuration from path. Empty path loads defaults and
// environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "tokendump.log")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 5)
	v.SetDefault("log.file.max_age_days", 30)
	v.SetDefault("log.file.compress", true)
	v.SetDefault("dictionaries", []string{})
	v.SetDefault("metrics", false)
}

// Validate checks values that can not be defaulted.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported format %q", c.Log.Format)
	}
	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return fmt.Errorf("log.file.path is required when file logging is enabled")
	}
	for i, d := range c.Dictionaries {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("dictionaries[%d]: empty path", i)
		}
	}
	return nil
}
