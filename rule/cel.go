package rule

import (
	"sort"
	"strings"

	celgo "github.com/google/cel-go/cel"
	functions "github.com/google/cel-go/common/functions"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*engineConfig)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(cfg *engineConfig) {
		cfg.cache = cache
	}
}

// CELWithFunctionRegistry exposes a FunctionRegistry as call(name, [args]).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(cfg *engineConfig) {
		cfg.useRegistry(registry)
	}
}

type celEvaluator struct {
	engineConfig
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. Every variable is
// declared dynamically typed.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	return &celEvaluator{engineConfig: newEngineConfig(opts)}
}

func (e *celEvaluator) Evaluate(ctx Context, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", ErrEmptyExpression)
	}
	ctx = ctx.withDefaults()
	program, err := e.loadOrCompile(expression, ctx.Behavior, ctx.Vars)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.label(), err)
	}
	out, _, err := program.Eval(e.activation(ctx))
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.label(), err)
	}
	return out.Value(), nil
}

// Compile defers program construction to the first evaluation because the
// CEL environment depends on the variables bound at that point.
func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", ErrEmptyExpression)
	}
	return &celCompiledRule{
		evaluator:  e,
		expression: expression,
	}, nil
}

// loadOrCompile keys programs by behavior and bound variable names; call
// binds the behavior's scoped functions when the program is built.
func (e *celEvaluator) loadOrCompile(expression, behavior string, vars map[string]any) (celgo.Program, error) {
	names := variableNames(vars)
	key := "cel:" + behavior + ":" + strings.Join(names, ",") + ":" + expression
	return cachedProgram(e.cache, key, func() (celgo.Program, error) {
		env, err := e.buildEnv(behavior, names)
		if err != nil {
			return nil, err
		}
		ast, issues := env.Compile(expression)
		if issues != nil && issues.Err() != nil {
			return nil, issues.Err()
		}
		return env.Program(ast)
	})
}

func (e *celEvaluator) buildEnv(behavior string, names []string) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
	}
	if e.registry != nil {
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_dyn",
			[]*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)},
			celgo.DynType,
			celgo.FunctionBinding(functions.FunctionOp(callBinding(e.call(behavior)))),
		)))
	}
	for _, name := range names {
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) activation(ctx Context) map[string]any {
	return ctx.bindings()
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
}

func (r *celCompiledRule) Evaluate(ctx Context) (any, error) {
	return r.evaluator.Evaluate(ctx, r.expression)
}

func variableNames(vars map[string]any) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		switch name {
		case "now", "args", "metadata":
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// callBinding adapts a registry call to call(name, [args...]).
func callBinding(call func(string, ...any) (any, error)) func(...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if len(values) != 2 {
			return types.NewErr("rule: call requires a name and an argument list")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("rule: call name must be string")
		}
		list, ok := values[1].(traits.Lister)
		if !ok {
			return types.NewErr("rule: call arguments must be a list, got %s", values[1].Type().TypeName())
		}
		size, _ := list.Size().(types.Int)
		args := make([]any, 0, int(size))
		for i := types.Int(0); i < size; i++ {
			args = append(args, list.Get(i).Value())
		}
		result, err := call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
