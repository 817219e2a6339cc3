package rule

import (
	"fmt"
	"time"
)

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx Context, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx Context) (any, error)
}

// Engine names the engine behind e.
func Engine(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	if logged, ok := e.(*loggingEvaluator); ok {
		return Engine(logged.next)
	}
	switch fmt.Sprintf("%T", e) {
	case "*rule.exprEvaluator":
		return "expr"
	case "*rule.celEvaluator":
		return "cel"
	case "*rule.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}

// New returns the evaluator for engine, one of "expr", "cel" or "js".
// An empty engine selects expr.
func New(engine string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch engine {
	case "", "expr":
		return NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(registry)), nil
	case "cel":
		return NewCELEvaluator(CELWithProgramCache(cache), CELWithFunctionRegistry(registry)), nil
	case "js":
		evaluator := NewJSEvaluator(JSWithProgramCache(cache), JSWithFunctionRegistry(registry))
		if evaluator == nil {
			return nil, fmt.Errorf("%w: js requires the js_eval build tag", ErrNoEvaluator)
		}
		return evaluator, nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrNoEvaluator, engine)
	}
}

// WithLogger decorates e so every Evaluate call is reported to logger.
func WithLogger(e Evaluator, logger EvaluatorLogger) Evaluator {
	if e == nil || logger == nil {
		return e
	}
	return &loggingEvaluator{next: e, logger: logger}
}

type loggingEvaluator struct {
	next   Evaluator
	logger EvaluatorLogger
}

func (l *loggingEvaluator) Evaluate(ctx Context, expr string) (any, error) {
	start := time.Now()
	value, err := l.next.Evaluate(ctx, expr)
	l.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:   Engine(l.next),
		Expr:     expr,
		Behavior: ctx.label(),
		Duration: time.Since(start),
		Err:      err,
	})
	return value, err
}

func (l *loggingEvaluator) Compile(expr string) (CompiledRule, error) {
	return l.next.Compile(expr)
}

func evaluatorOrDefault(e Evaluator) Evaluator {
	if e == nil {
		return NewExprEvaluator()
	}
	return e
}
