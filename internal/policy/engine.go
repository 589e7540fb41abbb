package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"testkind/internal/aging"
	"testkind/internal/attribute"
	"testkind/internal/logger"
	"testkind/pkg/cel"
	"testkind/pkg/metrics"
)

// Policy is the part of the configuration the engine consults.
type Policy interface {
	IsKindExcluded(kind string) bool
	MatchesExcludeRule(ctx context.Context, subject cel.Subject) bool
	MissingResources(requested []string) []string
	AgingThresholds() (maxAgeDays, skipWindowDays uint32)
}

type Engine struct {
	policy Policy
	logger logger.Logger
}

func NewEngine(p Policy, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NopLogger()
	}
	return &Engine{policy: p, logger: log}
}

// Decide maps a classification to exactly one disposition. It never fails
// and reads no clock; now is the reference date for unit test aging.
func (e *Engine) Decide(ctx context.Context, c attribute.Classification, now time.Time) Disposition {
	d := e.decide(ctx, c, now)

	metrics.IncDecision(c.Category(), d.Action.String())
	e.logger.DebugwCtx(ctx, "Decided test disposition",
		"kind", c.Kind(),
		"action", d.Action.String(),
		"reason", d.Reason,
	)
	return d
}

func (e *Engine) decide(ctx context.Context, c attribute.Classification, now time.Time) Disposition {
	switch v := c.(type) {
	case attribute.Unit:
		maxDays, skipDays := e.policy.AgingThresholds()
		age := aging.Evaluate(v.Updated, now, maxDays, skipDays)
		metrics.IncAgeOutcome(age.Outcome.String())

		switch age.Outcome {
		case aging.Young:
			if e.excluded(ctx, v, nil) {
				return SkipTest("Unit tests are excluded")
			}
			return RunTest()
		case aging.Aged:
			return SkipTest(age.Reason)
		default:
			return IgnoreTest()
		}

	case attribute.Integration:
		if e.excluded(ctx, v, nil) {
			return SkipTest("Integration tests are excluded")
		}
		return RunTest()

	case attribute.Other:
		if e.excluded(ctx, v, v.Resources) {
			return SkipTest(fmt.Sprintf("Test of kind: %s are excluded", v.Name))
		}
		if missing := e.policy.MissingResources(v.Resources); len(missing) > 0 {
			return SkipTest(fmt.Sprintf("Test of kind: %s requires %s", v.Name, FormatResources(missing)))
		}
		return RunTest()

	default:
		panic(fmt.Sprintf("policy: unknown classification %T", c))
	}
}

func (e *Engine) excluded(ctx context.Context, c attribute.Classification, resources []string) bool {
	if e.policy.IsKindExcluded(c.Kind()) {
		return true
	}
	return e.policy.MatchesExcludeRule(ctx, cel.Subject{
		Kind:      strings.ToLower(c.Kind()),
		Category:  c.Category(),
		Resources: resources,
	})
}

// FormatResources renders a resource set as "{a, b}".
func FormatResources(resources []string) string {
	return "{" + strings.Join(resources, ", ") + "}"
}
