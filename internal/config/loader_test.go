package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"testkind/internal/constants"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		constants.EnvExclude,
		constants.EnvUnitAge,
		constants.EnvUnitSkip,
		constants.EnvKnownResources,
		constants.EnvResources,
		constants.EnvDefined,
		constants.EnvExcludeWhen,
		constants.EnvLogLevel,
		constants.EnvConfigFile,
	} {
		t.Setenv(name, "")
	}
}

func writeConfigFile(t *testing.T, content map[string]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testkind.yaml")
	data, err := yaml.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, warnings := LoadConfig("")

	assert.Empty(t, warnings)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(constants.EnvExclude, " unit , Integration,,")
	t.Setenv(constants.EnvUnitAge, "100")
	t.Setenv(constants.EnvUnitSkip, " 7 ")
	t.Setenv(constants.EnvKnownResources, "db, cache")
	t.Setenv(constants.EnvResources, "db")
	t.Setenv(constants.EnvDefined, "api,end2end")
	t.Setenv(constants.EnvExcludeWhen, `kind == "api"`)
	t.Setenv(constants.EnvLogLevel, "debug")

	cfg, warnings := LoadConfig("")

	assert.Empty(t, warnings)
	assert.Equal(t, []string{"unit", "Integration"}, cfg.ExcludedKinds)
	assert.Equal(t, uint32(100), cfg.MaxAgeDays)
	assert.Equal(t, uint32(7), cfg.SkipWindowDays)
	assert.Equal(t, []string{"db", "cache"}, cfg.KnownResources)
	assert.Equal(t, []string{"db"}, cfg.AvailableResources)
	assert.Equal(t, []string{"api", "end2end"}, cfg.DefinedKinds)
	assert.Equal(t, `kind == "api"`, cfg.ExcludeWhen)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_MalformedNumbersFallBack(t *testing.T) {
	tests := []struct {
		name     string
		age      string
		skip     string
		wantAge  uint32
		wantSkip uint32
		warnings int
	}{
		{
			name:     "not a number",
			age:      "forever",
			skip:     "soon",
			wantAge:  constants.DefaultUnitAgeDays,
			wantSkip: constants.DefaultUnitSkipDays,
			warnings: 2,
		},
		{
			name:     "negative",
			age:      "-1",
			skip:     "5",
			wantAge:  constants.DefaultUnitAgeDays,
			wantSkip: 5,
			warnings: 1,
		},
		{
			name:     "overflows u32",
			age:      "4294967296",
			skip:     "4294967295",
			wantAge:  constants.DefaultUnitAgeDays,
			wantSkip: 4294967295,
			warnings: 1,
		},
		{
			name:     "zero disables aging",
			age:      "0",
			skip:     "0",
			wantAge:  0,
			wantSkip: 0,
			warnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(constants.EnvUnitAge, tt.age)
			t.Setenv(constants.EnvUnitSkip, tt.skip)

			cfg, warnings := LoadConfig("")

			assert.Equal(t, tt.wantAge, cfg.MaxAgeDays)
			assert.Equal(t, tt.wantSkip, cfg.SkipWindowDays)
			assert.Len(t, warnings, tt.warnings)
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, map[string]interface{}{
		"exclude":   []string{"end2end", " api "},
		"resources": "db, queue",
		"unit_age":  30,
		"unit_skip": 3,
	})

	cfg, warnings := LoadConfig(path)

	assert.Empty(t, warnings)
	assert.Equal(t, []string{"end2end", "api"}, cfg.ExcludedKinds)
	assert.Equal(t, []string{"db", "queue"}, cfg.AvailableResources)
	assert.Equal(t, uint32(30), cfg.MaxAgeDays)
	assert.Equal(t, uint32(3), cfg.SkipWindowDays)
}

func TestLoadConfig_NonIntegerFileDays(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{name: "bool", value: true},
		{name: "fractional", value: 30.9},
		{name: "negative fractional", value: -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeConfigFile(t, map[string]interface{}{
				"unit_age":  tt.value,
				"unit_skip": tt.value,
			})

			cfg, warnings := LoadConfig(path)

			require.Len(t, warnings, 2)
			assert.Equal(t, constants.KeyUnitAge, warnings[0].Field)
			assert.Equal(t, constants.KeyUnitSkip, warnings[1].Field)
			assert.Equal(t, constants.DefaultUnitAgeDays, cfg.MaxAgeDays)
			assert.Equal(t, constants.DefaultUnitSkipDays, cfg.SkipWindowDays)
		})
	}
}

func TestLoadConfig_WholeFloatFileDays(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "testkind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unit_age: 45.0\n"), 0o644))

	cfg, warnings := LoadConfig(path)

	assert.Empty(t, warnings)
	assert.Equal(t, uint32(45), cfg.MaxAgeDays)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, map[string]interface{}{
		"unit_age": 30,
		"exclude":  []string{"api"},
	})
	t.Setenv(constants.EnvUnitAge, "90")
	t.Setenv(constants.EnvConfigFile, path)

	cfg, warnings := LoadConfig("")

	assert.Empty(t, warnings)
	assert.Equal(t, uint32(90), cfg.MaxAgeDays)
	assert.Equal(t, []string{"api"}, cfg.ExcludedKinds)
}

func TestLoadConfig_MissingFileIsWarning(t *testing.T) {
	clearEnv(t)

	cfg, warnings := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Len(t, warnings, 1)
	assert.Equal(t, "config", warnings[0].Field)
	assert.Equal(t, Default(), *cfg)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList([]string{" a ,b", "", " c"}))
	assert.Nil(t, SplitList([]string{" , "}))
}
