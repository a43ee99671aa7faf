// Package config loads krait's runtime configuration from a YAML file and
// KRAIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides. Nested keys join with an
// underscore: KRAIT_LOOP_TARGET_RATE overrides loop.target_rate.
const EnvPrefix = "KRAIT"

// Config is the root configuration.
type Config struct {
	// Logging controls log output.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Loop configures the scheduler.
	Loop LoopConfig `mapstructure:"loop" yaml:"loop"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Input configures where key input comes from.
	Input InputConfig `mapstructure:"input" yaml:"input"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error DEBUG INFO WARN ERROR" yaml:"level"`

	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
}

type LoopConfig struct {
	// TargetRate is iterations per second. Zero means uncapped.
	TargetRate float64 `mapstructure:"target_rate" validate:"gte=0,lte=1000" yaml:"target_rate"`

	// MaxFrames stops the loop after that many iterations. Zero runs until
	// interrupted.
	MaxFrames uint64 `mapstructure:"max_frames" yaml:"max_frames"`

	// Windowed runs the loop inside an Ebitengine window.
	Windowed bool `mapstructure:"windowed" yaml:"windowed"`

	Title  string `mapstructure:"title" yaml:"title"`
	Width  int    `mapstructure:"width" validate:"gte=0,lte=8192" yaml:"width"`
	Height int    `mapstructure:"height" validate:"gte=0,lte=8192" yaml:"height"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port" yaml:"addr"`
}

type InputConfig struct {
	// Script is a path to a YAML input script. Empty means no scripted input.
	Script string `mapstructure:"script" yaml:"script,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Loop: LoopConfig{
			TargetRate: 60,
			Title:      "krait",
			Width:      640,
			Height:     480,
		},
		Metrics: MetricsConfig{Addr: ":2112"},
	}
}

// Load reads configuration from path, falling back to defaults for anything
// the file or environment leaves unset. An empty path skips the file. A path
// that does not exist is an error.
func Load(path string) (*Config, error) {
	return FromViper(Viper(path))
}

// Viper builds a viper instance with defaults and environment bindings but
// without reading a file, so callers can bind command-line flags before
// loading.
func Viper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	setupViper(v, path)
	return v
}

// FromViper reads an optional config file into v and decodes and validates
// the result.
func FromViper(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setupViper(v *viper.Viper, path string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	}
}

// setDefaults registers every key so AutomaticEnv can override keys the file
// never mentions.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("loop.target_rate", d.Loop.TargetRate)
	v.SetDefault("loop.max_frames", d.Loop.MaxFrames)
	v.SetDefault("loop.windowed", d.Loop.Windowed)
	v.SetDefault("loop.title", d.Loop.Title)
	v.SetDefault("loop.width", d.Loop.Width)
	v.SetDefault("loop.height", d.Loop.Height)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("input.script", d.Input.Script)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	return validate.Struct(cfg)
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
