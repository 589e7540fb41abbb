package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatic(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		fields []string
	}{
		{
			name:   "defaults",
			cfg:    Default(),
			fields: nil,
		},
		{
			name:   "unknown log level",
			cfg:    Config{LogLevel: "verbose"},
			fields: []string{"log_level"},
		},
		{
			name: "excluded kind outside defined kinds",
			cfg: Config{
				DefinedKinds:  []string{"api"},
				ExcludedKinds: []string{"unit", "API", "smoke"},
			},
			fields: []string{"exclude"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields []string
			for _, w := range ValidateStatic(&tt.cfg) {
				fields = append(fields, w.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestCompileExcludeRule(t *testing.T) {
	rule, w := compileExcludeRule("")
	assert.Nil(t, rule)
	assert.Nil(t, w)

	rule, w = compileExcludeRule(`category == "other"`)
	assert.NotNil(t, rule)
	assert.Nil(t, w)

	rule, w = compileExcludeRule(`size(resources)`)
	assert.Nil(t, rule)
	assert.NotNil(t, w)
}
