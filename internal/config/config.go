// Package config loads casegen settings from an optional YAML file overlaid by
// command-line values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "casegen.yaml"

var validate = validator.New()

// Store selects where generated runs are persisted. An empty Kind keeps runs unsaved.
type Store struct {
	Kind string        `mapstructure:"kind" yaml:"kind" validate:"omitempty,oneof=memory file redis sqlite"`
	Addr string        `mapstructure:"addr" yaml:"addr" validate:"required_if=Kind redis"`
	Path string        `mapstructure:"path" yaml:"path" validate:"required_if=Kind sqlite"`
	TTL  time.Duration `mapstructure:"ttl" yaml:"ttl" validate:"gte=0"`
}

// Config holds every setting of a generation run.
type Config struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=csv tsv yaml json loam"`

	Strategy string `mapstructure:"strategy" yaml:"strategy" validate:"required,oneof=node path euler all"`
	Begin    string `mapstructure:"begin" yaml:"begin"`
	End      string `mapstructure:"end" yaml:"end" validate:"required_if=Strategy all"`
	Entry    string `mapstructure:"entry" yaml:"entry"`
	Start    string `mapstructure:"start" yaml:"start"`
	Open     bool   `mapstructure:"open" yaml:"open"`
	MaxDepth int    `mapstructure:"max_depth" yaml:"max_depth" validate:"gte=0"`
	MaxCases int    `mapstructure:"max_cases" yaml:"max_cases" validate:"gte=0"`
	Shuffle  int64  `mapstructure:"shuffle" yaml:"shuffle"`

	Output       string `mapstructure:"output" yaml:"output"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" validate:"omitempty,oneof=text json yaml csv"`

	Store Store `mapstructure:"store" yaml:"store"`

	LogFile string `mapstructure:"log_file" yaml:"log_file"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Strategy: "path",
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and falls back to
// the defaults when it does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Apply(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply decodes values over c. Keys use the snake_case names of the YAML file and
// unknown keys are rejected. Durations may be given as strings like "10m".
func (c *Config) Apply(values map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Strategy == "node" && c.End == "" {
		return fmt.Errorf("invalid configuration: End is required")
	}
	return nil
}

func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, e.Param(), e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, e.Tag(), e.Param()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
