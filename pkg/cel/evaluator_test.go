package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluator(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)
	assert.NotNil(t, eval)
}

func TestValidateRuleExpression(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		expr      string
		wantError bool
	}{
		{
			name:      "valid bool expression",
			expr:      `category == "other"`,
			wantError: false,
		},
		{
			name:      "non-bool expression",
			expr:      `kind`,
			wantError: true,
		},
		{
			name:      "valid membership",
			expr:      `"db" in resources`,
			wantError: false,
		},
		{
			name:      "invalid syntax",
			expr:      `invalid syntax here!!!`,
			wantError: true,
		},
		{
			name:      "undefined variable",
			expr:      `payload == "test"`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eval.ValidateRuleExpression(tt.expr)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRuleExpressionExamplesCompile(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	for name, expr := range RuleExpressionExamples {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, eval.ValidateRuleExpression(expr))
		})
	}
}

func TestRuleMatches(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	api := Subject{Kind: "api", Category: "other", Resources: []string{"db", "cache"}}
	integration := Subject{Kind: "integration", Category: "integration"}

	tests := []struct {
		name    string
		expr    string
		subject Subject
		want    bool
	}{
		{
			name:    "kind equality true",
			expr:    `kind == "api"`,
			subject: api,
			want:    true,
		},
		{
			name:    "kind equality false",
			expr:    `kind == "end2end"`,
			subject: api,
			want:    false,
		},
		{
			name:    "resource membership",
			expr:    `"cache" in resources`,
			subject: api,
			want:    true,
		},
		{
			name:    "resource count",
			expr:    `size(resources) > 2`,
			subject: api,
			want:    false,
		},
		{
			name:    "nil resources behave as empty list",
			expr:    `size(resources) == 0 && category == "integration"`,
			subject: integration,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := eval.CompileRule(tt.expr)
			require.NoError(t, err)

			got, err := rule.Matches(context.Background(), tt.subject)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileRuleRejectsNonBool(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	rule, err := eval.CompileRule(`resources`)
	assert.Error(t, err)
	assert.Nil(t, rule)
}
