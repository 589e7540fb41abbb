package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"testkind/internal/constants"
)

const keyConfigFile = "config"

// LoadConfig reads every setting from the environment, falling back to the
// optional YAML file and then to defaults. An empty configFile means the
// TEST_KIND_CONFIG variable, if any.
func LoadConfig(configFile string) (*Config, []*ValidationError) {
	v := viper.New()
	v.SetConfigType("yaml")

	bindEnvVariables(v)
	setDefaults(v)

	var warnings []*ValidationError

	if configFile == "" {
		configFile = v.GetString(keyConfigFile)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			warnings = append(warnings, &ValidationError{
				Field:   keyConfigFile,
				Message: fmt.Sprintf("failed to read config file %s: %v", configFile, err),
			})
		}
	}

	cfg := Config{
		ExcludedKinds:      readList(v, constants.KeyExclude, &warnings),
		DefinedKinds:       readList(v, constants.KeyDefined, &warnings),
		KnownResources:     readList(v, constants.KeyKnownResources, &warnings),
		AvailableResources: readList(v, constants.KeyResources, &warnings),
		MaxAgeDays:         readDays(v, constants.KeyUnitAge, constants.DefaultUnitAgeDays, &warnings),
		SkipWindowDays:     readDays(v, constants.KeyUnitSkip, constants.DefaultUnitSkipDays, &warnings),
		ExcludeWhen:        strings.TrimSpace(v.GetString(constants.KeyExcludeWhen)),
		LogLevel:           strings.TrimSpace(v.GetString(constants.KeyLogLevel)),
	}

	return &cfg, warnings
}

func bindEnvVariables(v *viper.Viper) {
	v.BindEnv(keyConfigFile, constants.EnvConfigFile)
	v.BindEnv(constants.KeyExclude, constants.EnvExclude)
	v.BindEnv(constants.KeyUnitAge, constants.EnvUnitAge)
	v.BindEnv(constants.KeyUnitSkip, constants.EnvUnitSkip)
	v.BindEnv(constants.KeyKnownResources, constants.EnvKnownResources)
	v.BindEnv(constants.KeyResources, constants.EnvResources)
	v.BindEnv(constants.KeyDefined, constants.EnvDefined)
	v.BindEnv(constants.KeyExcludeWhen, constants.EnvExcludeWhen)
	v.BindEnv(constants.KeyLogLevel, constants.EnvLogLevel)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.KeyLogLevel, constants.DefaultLogLevel)
}

// readList accepts a comma separated string (environment) or a sequence
// (YAML). Items are trimmed and empty items dropped.
func readList(v *viper.Viper, key string, warnings *[]*ValidationError) []string {
	var items []string

	switch raw := v.Get(key).(type) {
	case nil:
		return nil
	case string:
		items = strings.Split(raw, ",")
	default:
		list, err := cast.ToStringSliceE(raw)
		if err != nil {
			*warnings = append(*warnings, &ValidationError{
				Field:   key,
				Message: fmt.Sprintf("expected a list of names, got %T", raw),
			})
			return nil
		}
		items = list
	}

	return SplitList(items)
}

// SplitList trims every item, splits items that still hold commas and
// drops empty entries.
func SplitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// readDays parses a day count. Anything that is not a non-negative 32 bit
// integer yields def and a warning.
func readDays(v *viper.Viper, key string, def uint32, warnings *[]*ValidationError) uint32 {
	raw := v.Get(key)
	if raw == nil {
		return def
	}

	var (
		days uint32
		err  error
	)
	switch value := raw.(type) {
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return def
		}
		var n uint64
		n, err = strconv.ParseUint(s, 10, 32)
		days = uint32(n)
	case bool:
		err = fmt.Errorf("not a number: %v", value)
	case float32:
		days, err = integralDays(float64(value))
	case float64:
		days, err = integralDays(value)
	default:
		days, err = cast.ToUint32E(raw)
	}

	if err != nil {
		*warnings = append(*warnings, &ValidationError{
			Field:   key,
			Message: fmt.Sprintf("invalid day count %v, using default %d", raw, def),
		})
		return def
	}

	return days
}

func integralDays(f float64) (uint32, error) {
	if f != math.Trunc(f) || f < 0 || f > math.MaxUint32 {
		return 0, fmt.Errorf("not a whole day count: %v", f)
	}
	return uint32(f), nil
}
