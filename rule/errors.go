package rule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEvaluator reports an engine that cannot be constructed.
	ErrNoEvaluator = errors.New("rule: evaluator not configured")
	// ErrEmptyExpression rejects blank expressions.
	ErrEmptyExpression = errors.New("rule: expression must not be empty")
	// ErrResultType reports a result that does not match the expected type.
	ErrResultType = errors.New("rule: unexpected result type")
)

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine   string
	Expr     string
	Behavior string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("rule: %s evaluator %s behavior=%s: %v", e.Engine, describeExpression(e.Expr), e.Behavior, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "rule:") {
		return err
	}
	return fmt.Errorf("rule: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr, behavior string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Behavior == "" {
			evalErr.Behavior = behavior
		}
		return evalErr
	}

	return &EvaluationError{
		Engine:   engine,
		Expr:     expr,
		Behavior: behavior,
		Err:      err,
	}
}
