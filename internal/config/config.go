// Package config provides configuration loading for the dbsetup CLI.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/volleytrieste/dbsetup/internal/errors"
)

// Default script list, in the order the scripts must be pasted.
var DefaultScripts = []string{
	"scripts/01_create_tables.sql",
	"scripts/02_seed_data.sql",
}

// Config holds the application configuration.
type Config struct {
	// Project is the name shown in the opening banner
	Project string `mapstructure:"project" yaml:"project" json:"project"`

	// Dashboard is the hosted service named in the next-step instructions
	Dashboard string `mapstructure:"dashboard" yaml:"dashboard" json:"dashboard"`

	// Root is the directory script paths are resolved against
	Root string `mapstructure:"root" yaml:"root" json:"root"`

	// Scripts is the ordered list of SQL files to print
	Scripts []string `mapstructure:"scripts" yaml:"scripts" json:"scripts"`

	// PreviewLength is the number of characters shown in the preview line
	PreviewLength int `mapstructure:"preview_length" yaml:"preview_length" json:"preview_length"`

	// BannerWidth is the number of separator characters in each banner
	BannerWidth int `mapstructure:"banner_width" yaml:"banner_width" json:"banner_width"`

	// Strict makes partial failure exit non-zero
	Strict bool `mapstructure:"strict" yaml:"strict" json:"strict"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Logging levels accepted by Validate.
const (
	LevelOff   = "off"
	LevelError = "error"
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Project:       "Volley Club Trieste",
		Dashboard:     "Supabase",
		Root:          ".",
		Scripts:       append([]string(nil), DefaultScripts...),
		PreviewLength: 200,
		BannerWidth:   50,
		Strict:        false,
		Logging: LoggingConfig{
			Level:  LevelOff,
			Format: "json",
		},
	}
}

// Load loads configuration from file and environment.
// An explicit configPath must exist; the default locations are optional.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".dbsetup"))
		}
		// No config type: only dbsetup.<ext> matches, never a bare
		// dbsetup binary in the working directory.
		v.SetConfigName("dbsetup")
	}

	v.SetEnvPrefix("DBSETUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("project", d.Project)
	v.SetDefault("dashboard", d.Dashboard)
	v.SetDefault("root", d.Root)
	v.SetDefault("scripts", d.Scripts)
	v.SetDefault("preview_length", d.PreviewLength)
	v.SetDefault("banner_width", d.BannerWidth)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks the configuration for values the runner cannot honor.
func (c *Config) Validate() error {
	if len(c.Scripts) == 0 {
		return errors.NewInvalidConfig("scripts", "at least one script is required")
	}
	for _, p := range c.Scripts {
		if !fs.ValidPath(p) || p == "." {
			return errors.NewInvalidConfig("scripts",
				fmt.Sprintf("%q must be a relative slash-separated path without '..' segments", p))
		}
	}
	if c.Root == "" {
		return errors.NewInvalidConfig("root", "must not be empty")
	}
	if c.PreviewLength < 0 {
		return errors.NewInvalidConfig("preview_length", "must not be negative")
	}
	if c.BannerWidth < 1 {
		return errors.NewInvalidConfig("banner_width", "must be at least 1")
	}
	switch c.Logging.Level {
	case LevelOff, LevelError, LevelInfo, LevelDebug:
	default:
		return errors.NewInvalidConfig("logging.level",
			fmt.Sprintf("unknown level %q (want off, error, info or debug)", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return errors.NewInvalidConfig("logging.format",
			fmt.Sprintf("unknown format %q (want json or text)", c.Logging.Format))
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// exampleHeader is prepended to generated configuration files.
const exampleHeader = `# dbsetup configuration
#
# Scripts are printed in the order listed, relative to root.
# Every key can also be set with a DBSETUP_ environment variable,
# e.g. DBSETUP_PREVIEW_LENGTH=80 or DBSETUP_LOGGING_LEVEL=info.

`

// WriteExample writes the default configuration to path.
// An existing file is only replaced when force is set.
func WriteExample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	data, err := DefaultConfig().Marshal()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
