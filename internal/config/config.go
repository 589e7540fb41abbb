package config

import (
	"fmt"
	"slices"

	"testkind/internal/constants"
)

// Config is the resolved policy configuration. It is never mutated after
// LoadConfig returns.
type Config struct {
	ExcludedKinds      []string `yaml:"exclude"`
	DefinedKinds       []string `yaml:"defined"`
	KnownResources     []string `yaml:"known_resources"`
	AvailableResources []string `yaml:"resources"`
	MaxAgeDays         uint32   `yaml:"unit_age"`
	SkipWindowDays     uint32   `yaml:"unit_skip"`
	ExcludeWhen        string   `yaml:"exclude_when,omitempty"`
	LogLevel           string   `yaml:"log_level"`
}

func Default() Config {
	return Config{
		MaxAgeDays:     constants.DefaultUnitAgeDays,
		SkipWindowDays: constants.DefaultUnitSkipDays,
		LogLevel:       constants.DefaultLogLevel,
	}
}

func (c Config) clone() Config {
	c.ExcludedKinds = slices.Clone(c.ExcludedKinds)
	c.DefinedKinds = slices.Clone(c.DefinedKinds)
	c.KnownResources = slices.Clone(c.KnownResources)
	c.AvailableResources = slices.Clone(c.AvailableResources)
	return c
}

// ValidationError describes a setting that was ignored. Loading never fails;
// these are reported and the default is used instead.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}
