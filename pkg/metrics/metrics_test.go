package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()

	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestIncDecision(t *testing.T) {
	before := testutil.ToFloat64(DecisionsTotal.WithLabelValues("unit", "run"))

	IncDecision("unit", "run")
	IncDecision("unit", "run")

	assert.Equal(t, before+2, testutil.ToFloat64(DecisionsTotal.WithLabelValues("unit", "run")))
}

func TestIncParseError(t *testing.T) {
	before := testutil.ToFloat64(ParseErrorsTotal.WithLabelValues("DATE_TOO_EARLY"))

	IncParseError("DATE_TOO_EARLY")

	assert.Equal(t, before+1, testutil.ToFloat64(ParseErrorsTotal.WithLabelValues("DATE_TOO_EARLY")))
}

func TestRuleEvaluationErrors(t *testing.T) {
	before := testutil.ToFloat64(RuleEvaluationErrorsTotal)

	IncRuleEvaluationError()

	assert.Equal(t, before+1, testutil.ToFloat64(RuleEvaluationErrorsTotal))
}
