package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "testkind_decisions_total",
			Help: "Total number of test dispositions decided (count)",
		},
		[]string{"category", "disposition"},
	)

	ParseErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "testkind_parse_errors_total",
			Help: "Total number of rejected test attributes (count)",
		},
		[]string{"code"},
	)

	AgeOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "testkind_unit_age_outcomes_total",
			Help: "Total number of unit test age evaluations by outcome (count)",
		},
		[]string{"outcome"},
	)

	ConfigWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "testkind_config_warnings_total",
			Help: "Total number of configuration values replaced by defaults (count)",
		},
		[]string{"field"},
	)

	RuleEvaluationErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "testkind_rule_evaluation_errors_total",
			Help: "Total number of exclusion rule evaluations that failed (count)",
		},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		DecisionsTotal,
		ParseErrorsTotal,
		AgeOutcomesTotal,
		ConfigWarningsTotal,
		RuleEvaluationErrorsTotal,
	}
}

// Register adds every testkind collector to reg. Collectors that are
// already registered are left alone.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

func IncDecision(category, disposition string) {
	DecisionsTotal.WithLabelValues(category, disposition).Inc()
}

func IncParseError(code string) {
	ParseErrorsTotal.WithLabelValues(code).Inc()
}

func IncAgeOutcome(outcome string) {
	AgeOutcomesTotal.WithLabelValues(outcome).Inc()
}

func IncConfigWarning(field string) {
	ConfigWarningsTotal.WithLabelValues(field).Inc()
}

func IncRuleEvaluationError() {
	RuleEvaluationErrorsTotal.Inc()
}
