package cel

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Subject is the view of a classified test that rule expressions can see.
type Subject struct {
	Kind      string
	Category  string
	Resources []string
}

type Evaluator struct {
	env *cel.Env
}

func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("kind", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("resources", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Evaluator{env: env}, nil
}

func (e *Evaluator) ValidateRuleExpression(expression string) error {
	_, err := e.compileBool(expression)
	return err
}

// Rule is a compiled boolean expression, safe for concurrent use.
type Rule struct {
	Expression string
	program    cel.Program
}

func (e *Evaluator) CompileRule(expression string) (*Rule, error) {
	ast, err := e.compileBool(expression)
	if err != nil {
		return nil, err
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &Rule{Expression: expression, program: program}, nil
}

func (e *Evaluator) compileBool(expression string) (*cel.Ast, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("rule expression must return bool, got %v", ast.OutputType())
	}

	return ast, nil
}

func (r *Rule) Matches(ctx context.Context, subject Subject) (bool, error) {
	resources := subject.Resources
	if resources == nil {
		resources = []string{}
	}

	vars := map[string]interface{}{
		"kind":      subject.Kind,
		"category":  subject.Category,
		"resources": resources,
	}

	result, _, err := r.program.ContextEval(ctx, vars)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL expression: %w", err)
	}

	matched, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression did not return bool, got %T", result.Value())
	}

	return matched, nil
}
