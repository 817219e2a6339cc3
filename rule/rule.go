package rule

import (
	"fmt"
	"reflect"
	"slices"

	behavior "github.com/goliatone/go-behavior"
)

// Condition contributes Uses to the resolution when Expr evaluates to true.
// An empty Expr always holds.
type Condition struct {
	Expr string
	Uses []behavior.Use
}

// DefineConditional creates a set behavior of conditions. Each contributed
// condition is evaluated once against vars and, when it holds, its uses are
// spliced into the resolution in place of the condition. A nil evaluator
// selects expr.
func DefineConditional(evaluator Evaluator, vars map[string]any, opts ...behavior.SetOption[Condition]) *behavior.SetBehavior[Condition] {
	evaluator = evaluatorOrDefault(evaluator)
	var set *behavior.SetBehavior[Condition]
	derive := func(cond Condition) ([]behavior.Use, error) {
		if cond.Expr == "" {
			return cond.Uses, nil
		}
		ok, err := Check(evaluator, Context{Vars: vars, Behavior: set.Name()}, cond.Expr)
		if err != nil || !ok {
			return nil, err
		}
		return cond.Uses, nil
	}
	opts = append(slices.Clone(opts), behavior.WithSetDerive[Condition](derive))
	set = behavior.DefineSet(opts...)
	return set
}

// Check evaluates expr and requires a boolean result.
func Check(evaluator Evaluator, ctx Context, expr string) (bool, error) {
	evaluator = evaluatorOrDefault(evaluator)
	out, err := evaluator.Evaluate(ctx, expr)
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	if !ok {
		return false, wrapEvaluationError(Engine(evaluator), expr, ctx.label(), fmt.Errorf("%w: want bool, got %T", ErrResultType, out))
	}
	return result, nil
}

// Combine returns a CombineFunc that evaluates expr with the priority-sorted
// specs bound to the identifier "specs". Numeric results are converted to V.
func Combine[S, V any](evaluator Evaluator, expr string) behavior.CombineFunc[S, V] {
	evaluator = evaluatorOrDefault(evaluator)
	return func(specs []S) (V, error) {
		var zero V
		out, err := evaluator.Evaluate(Context{Vars: map[string]any{"specs": specs}}, expr)
		if err != nil {
			return zero, err
		}
		value, ok := coerce[V](out)
		if !ok {
			return zero, wrapEvaluationError(Engine(evaluator), expr, "", fmt.Errorf("%w: want %T, got %T", ErrResultType, zero, out))
		}
		return value, nil
	}
}

func coerce[V any](out any) (V, bool) {
	var zero V
	if value, ok := out.(V); ok {
		return value, true
	}
	if out == nil {
		return zero, false
	}
	source := reflect.ValueOf(out)
	target := reflect.TypeOf((*V)(nil)).Elem()
	if isNumeric(source.Kind()) && isNumeric(target.Kind()) {
		value, ok := source.Convert(target).Interface().(V)
		return value, ok
	}
	return zero, false
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
