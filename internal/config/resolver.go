package config

import (
	"context"
	"strings"
	"sync"

	"testkind/internal/logger"
	"testkind/pkg/cel"
	"testkind/pkg/metrics"
)

var (
	resolver     *Resolver
	resolverOnce sync.Once
)

// Resolve returns the process-wide resolver, loading the configuration from
// the environment on first use. Concurrent first callers all observe the
// same snapshot.
func Resolve() *Resolver {
	resolverOnce.Do(func() {
		cfg, warnings := LoadConfig("")
		log, err := logger.New(cfg.LogLevel)
		if err != nil {
			log = logger.NopLogger()
		}
		if sugared, ok := log.(*logger.SugaredLogger); ok {
			sugared.SetComponent("testkind")
		}
		resolver = NewResolver(*cfg, log, warnings...)
	})
	return resolver
}

type set map[string]struct{}

func (s set) has(name string) bool {
	_, ok := s[name]
	return ok
}

func exactSet(items []string) set {
	s := make(set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func lowerSet(items []string) set {
	s := make(set, len(items))
	for _, item := range items {
		s[strings.ToLower(item)] = struct{}{}
	}
	return s
}

// Resolver answers point queries against an immutable Config. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	cfg       Config
	excluded  set
	defined   set
	known     set
	available set
	rule      *cel.Rule
	warnings  []*ValidationError
	log       logger.Logger
}

// NewResolver builds a resolver over a copy of cfg. Load warnings passed in
// are reported together with the static validation warnings.
func NewResolver(cfg Config, log logger.Logger, loadWarnings ...*ValidationError) *Resolver {
	if log == nil {
		log = logger.NopLogger()
	}

	cfg = cfg.clone()
	warnings := append([]*ValidationError{}, loadWarnings...)
	warnings = append(warnings, ValidateStatic(&cfg)...)

	rule, w := compileExcludeRule(cfg.ExcludeWhen)
	if w != nil {
		warnings = append(warnings, w)
	}

	for _, w := range warnings {
		metrics.IncConfigWarning(w.Field)
		log.Warnw("Ignoring configuration value", "field", w.Field, "reason", w.Message)
	}

	return &Resolver{
		cfg:       cfg,
		excluded:  lowerSet(cfg.ExcludedKinds),
		defined:   lowerSet(cfg.DefinedKinds),
		known:     lowerSet(cfg.KnownResources),
		available: exactSet(cfg.AvailableResources),
		rule:      rule,
		warnings:  warnings,
		log:       log,
	}
}

// Config returns a copy of the resolved configuration.
func (r *Resolver) Config() Config {
	return r.cfg.clone()
}

func (r *Resolver) Warnings() []*ValidationError {
	return append([]*ValidationError(nil), r.warnings...)
}

func (r *Resolver) IsKindExcluded(kind string) bool {
	excluded := r.excluded.has(strings.ToLower(kind))
	r.log.Debugw("Check test kind excluded", "kind", kind, "excluded", excluded)
	return excluded
}

// IsKindDefined is true for every kind when no kinds are configured.
func (r *Resolver) IsKindDefined(kind string) bool {
	if len(r.defined) == 0 {
		return true
	}
	return r.defined.has(strings.ToLower(kind))
}

// IsResourceKnown is true for every resource when no resources are configured.
func (r *Resolver) IsResourceKnown(resource string) bool {
	if len(r.known) == 0 {
		return true
	}
	return r.known.has(strings.ToLower(resource))
}

// MissingResources returns the requested resources that are not available,
// in request order. Matching is exact.
func (r *Resolver) MissingResources(requested []string) []string {
	var missing []string
	seen := make(set, len(requested))
	for _, res := range requested {
		if r.available.has(res) || seen.has(res) {
			continue
		}
		seen[res] = struct{}{}
		missing = append(missing, res)
	}
	return missing
}

func (r *Resolver) AgingThresholds() (maxAgeDays, skipWindowDays uint32) {
	return r.cfg.MaxAgeDays, r.cfg.SkipWindowDays
}

// MatchesExcludeRule reports whether the exclude_when rule selects subject.
// Evaluation failures count as no match.
func (r *Resolver) MatchesExcludeRule(ctx context.Context, subject cel.Subject) bool {
	if r.rule == nil {
		return false
	}

	matched, err := r.rule.Matches(ctx, subject)
	if err != nil {
		metrics.IncRuleEvaluationError()
		r.log.WarnwCtx(ctx, "Exclusion rule evaluation failed",
			"expression", r.rule.Expression,
			"kind", subject.Kind,
			"error", err,
		)
		return false
	}

	r.log.DebugwCtx(ctx, "Check exclusion rule", "kind", subject.Kind, "matched", matched)
	return matched
}

func (r *Resolver) Logger() logger.Logger {
	return r.log
}
