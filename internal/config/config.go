// Package config handles configuration loading and validation for codd.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for codd.
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	REPL    REPLConfig    `mapstructure:"repl" yaml:"repl"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// REPLConfig holds interactive shell configuration.
type REPLConfig struct {
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`
	Prompt      string `mapstructure:"prompt" yaml:"prompt"`
}

// DisplayConfig holds result rendering configuration.
type DisplayConfig struct {
	MaxColWidth int `mapstructure:"max_col_width" yaml:"max_col_width"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		REPL: REPLConfig{
			HistoryFile: defaultHistoryFile(),
			Prompt:      "codd> ",
		},
		Display: DisplayConfig{
			MaxColWidth: 40,
		},
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.codd_history"
}

// Load reads configuration from file and environment. An empty configPath
// searches the usual locations; a missing file there falls back to
// defaults. CODD_* environment variables override both, e.g.
// CODD_LOG_LEVEL=debug.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := DefaultConfig()
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.output", cfg.Log.Output)
	v.SetDefault("repl.history_file", cfg.REPL.HistoryFile)
	v.SetDefault("repl.prompt", cfg.REPL.Prompt)
	v.SetDefault("display.max_col_width", cfg.Display.MaxColWidth)

	v.SetEnvPrefix("CODD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("codd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.codd")
		v.AddConfigPath("/etc/codd")

		// No config file found is fine; defaults apply
		_ = v.ReadInConfig()
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that configuration values are sensible.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	if c.Display.MaxColWidth < 8 {
		return fmt.Errorf("max_col_width must be at least 8, got %d", c.Display.MaxColWidth)
	}

	return nil
}

// WriteDefault writes the default configuration to path as YAML.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	header := []byte("# codd configuration file\n")
	return os.WriteFile(path, append(header, data...), 0644)
}
