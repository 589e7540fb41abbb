// Package testkind gates Go tests on their declared kind.
//
// A test states what it is as its first statement:
//
//	func TestLogin(t *testing.T) {
//		testkind.Check(t, "unit, updated=2024-05-01")
//		...
//	}
//
//	func TestOrdersAPI(t *testing.T) {
//		testkind.Check(t, "api, resources=postgres, redis")
//		...
//	}
//
// Check runs the test, skips it with a reason, or skips it silently, based on
// the TEST_KIND_* environment variables. An invalid attribute fails the test.
//
// Supported variables:
//
//   - TEST_KIND_EXCLUDE: kinds to skip, e.g. "unit,integration".
//   - TEST_KIND_UNIT_AGE: days a unit test runs after its updated date (365, 0 disables aging).
//   - TEST_KIND_UNIT_SKIP: days an aged unit test shows as skipped before going silent (30).
//   - TEST_KIND_RESOURCES: resources available in this environment.
//   - TEST_KIND_KNOWN_RESOURCES: allowed resource names; empty allows all.
//   - TEST_KIND_DEFINED: allowed kinds besides unit and integration; empty allows all.
//   - TEST_KIND_EXCLUDE_WHEN: CEL expression over kind, category and resources.
//   - TEST_KIND_CONFIG: optional YAML file with the same settings.
package testkind

import (
	"context"
	"sync"
	"time"

	"testkind/internal/attribute"
	"testkind/internal/config"
	"testkind/internal/policy"
	"testkind/pkg/errors"
	"testkind/pkg/logging"
	"testkind/pkg/metrics"
)

type (
	Disposition = policy.Disposition
	Action      = policy.Action
)

const (
	Run    = policy.Run
	Ignore = policy.Ignore
	Skip   = policy.Skip
)

// TB is the subset of testing.TB that Check needs.
type TB interface {
	Helper()
	Name() string
	Skip(args ...any)
	SkipNow()
	Fatalf(format string, args ...any)
}

type Checker struct {
	resolver *config.Resolver
	engine   *policy.Engine
	now      func() time.Time
}

func New(r *config.Resolver) *Checker {
	return &Checker{
		resolver: r,
		engine:   policy.NewEngine(r, r.Logger()),
		now:      time.Now,
	}
}

// WithClock returns a copy of c that takes the current date from now.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	cp := *c
	cp.now = now
	return &cp
}

var defaultChecker = sync.OnceValue(func() *Checker {
	return New(config.Resolve())
})

// Decide parses attr and returns its disposition as of now.
func (c *Checker) Decide(ctx context.Context, attr string) (Disposition, error) {
	now := c.now()

	classification, err := attribute.Parse(attr, c.resolver, now)
	if err != nil {
		metrics.IncParseError(errors.CodeOf(err))
		return Disposition{}, err
	}

	return c.engine.Decide(ctx, classification, now), nil
}

func (c *Checker) Check(t TB, attr string) {
	t.Helper()

	ctx := logging.WithAttribute(logging.WithTestName(context.Background(), t.Name()), attr)

	d, err := c.Decide(ctx, attr)
	if err != nil {
		t.Fatalf("testkind: %v", err)
		return
	}

	switch d.Action {
	case Ignore:
		t.SkipNow()
	case Skip:
		t.Skip(d.Reason)
	}
}

// Check gates t with the process-wide configuration.
func Check(t TB, attr string) {
	t.Helper()
	defaultChecker().Check(t, attr)
}

// Decide returns the disposition of attr under the process-wide
// configuration, as of today.
func Decide(attr string) (Disposition, error) {
	return defaultChecker().Decide(context.Background(), attr)
}
