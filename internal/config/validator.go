package config

import (
	"fmt"
	"strings"

	"testkind/internal/constants"
	"testkind/pkg/cel"
)

// ValidateStatic reports settings that are accepted but probably not what
// the user meant. It never rejects a configuration.
func ValidateStatic(cfg *Config) []*ValidationError {
	var warnings []*ValidationError

	if w := validateLogLevel(cfg.LogLevel); w != nil {
		warnings = append(warnings, w)
	}

	warnings = append(warnings, validateExcludedKinds(cfg)...)

	return warnings
}

func validateLogLevel(level string) *ValidationError {
	switch strings.ToLower(level) {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return &ValidationError{
		Field:   constants.KeyLogLevel,
		Message: fmt.Sprintf("unknown log level %q, using %s", level, constants.DefaultLogLevel),
	}
}

func validateExcludedKinds(cfg *Config) []*ValidationError {
	if len(cfg.DefinedKinds) == 0 {
		return nil
	}

	defined := lowerSet(cfg.DefinedKinds)
	defined[constants.KindUnit] = struct{}{}
	defined[constants.KindIntegration] = struct{}{}

	var warnings []*ValidationError
	for _, kind := range cfg.ExcludedKinds {
		if _, ok := defined[strings.ToLower(kind)]; !ok {
			warnings = append(warnings, &ValidationError{
				Field:   constants.KeyExclude,
				Message: fmt.Sprintf("excluded kind %q is not a defined kind", kind),
			})
		}
	}
	return warnings
}

// compileExcludeRule returns nil and no warning when expression is empty.
func compileExcludeRule(expression string) (*cel.Rule, *ValidationError) {
	if expression == "" {
		return nil, nil
	}

	evaluator, err := cel.NewEvaluator()
	if err != nil {
		return nil, &ValidationError{Field: constants.KeyExcludeWhen, Message: err.Error()}
	}

	if err := evaluator.ValidateRuleExpression(expression); err != nil {
		return nil, &ValidationError{
			Field:   constants.KeyExcludeWhen,
			Message: fmt.Sprintf("rule disabled: %v", err),
		}
	}

	rule, err := evaluator.CompileRule(expression)
	if err != nil {
		return nil, &ValidationError{
			Field:   constants.KeyExcludeWhen,
			Message: fmt.Sprintf("rule disabled: %v", err),
		}
	}
	return rule, nil
}
