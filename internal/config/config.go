// Package config loads and validates the tsslim configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the tsslim configuration.
type Config struct {
	// Include selects the source files to analyze (glob patterns,
	// ** supported).
	Include []string `json:"include" validate:"required,min=1,dive,required"`
	// Exclude removes files from the include set; exclusion wins.
	Exclude []string `json:"exclude,omitempty"`

	// Severity is the level findings are reported at.
	Severity string `json:"severity,omitempty" validate:"omitempty,oneof=error warning info"`

	// Strict promotes warnings to errors.
	Strict bool `json:"strict,omitempty"`
	// Quiet suppresses warnings and infos.
	Quiet bool `json:"quiet,omitempty"`

	// MaxFixPasses caps the analyze→edit→re-analyze loop of the fix
	// command. Each pass re-parses from scratch, so the cap only
	// matters for pathological inputs.
	MaxFixPasses int `json:"maxFixPasses,omitempty" validate:"omitempty,min=1,max=64"`

	// Watch holds watch-mode settings.
	Watch WatchConfig `json:"watch,omitempty"`
}

// WatchConfig specifies watch-mode behavior.
type WatchConfig struct {
	// DebounceMs is the quiet period after a change before re-running
	// analysis.
	DebounceMs int `json:"debounceMs,omitempty" validate:"omitempty,min=10,max=10000"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Include:      []string{"src/**/*.ts"},
		Severity:     "warning",
		MaxFixPasses: 16,
		Watch:        WatchConfig{DebounceMs: 300},
	}
}

// Load reads and parses a tsslim config file, merging it over the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %q: %w", path, err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fieldError(fe)
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError renders one validation failure in config-file terms.
func fieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required", "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s: at least one pattern required", field)
		}
		return fmt.Sprintf("%s: value %v is below the minimum", field, fe.Value())
	case "max":
		return fmt.Sprintf("%s: value %v is above the maximum", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s: invalid value %q — must be one of %s", field, fe.Value(), fe.Param())
	}
	return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
}
