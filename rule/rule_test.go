package rule

import (
	"errors"
	"testing"

	behavior "github.com/goliatone/go-behavior"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineConditionalSplicesMatchingUses(t *testing.T) {
	features := behavior.DefineSet(behavior.WithSetName[string]("features"))
	rules := DefineConditional(nil, map[string]any{"tier": "pro"}, behavior.WithSetName[Condition]("rules"))

	store, err := behavior.Resolve([]behavior.Use{
		rules.Use(Condition{Expr: `tier == "pro"`, Uses: []behavior.Use{features.Use("export")}}),
		rules.Use(Condition{Expr: `tier == "free"`, Uses: []behavior.Use{features.Use("ads")}}),
		rules.Use(Condition{Uses: []behavior.Use{features.Use("search")}}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"export", "search"}, features.Get(store))
	assert.Len(t, rules.Get(store), 3)
}

func TestDefineConditionalRequiresBooleanResult(t *testing.T) {
	features := behavior.DefineSet[string]()
	rules := DefineConditional(NewExprEvaluator(), nil, behavior.WithSetName[Condition]("rules"))

	_, err := behavior.Resolve([]behavior.Use{
		rules.Use(Condition{Expr: `"yes"`, Uses: []behavior.Use{features.Use("x")}}),
	})
	require.ErrorIs(t, err, ErrResultType)

	var resolveErr *behavior.ResolveError
	require.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, "rules", resolveErr.Behavior)
	assert.Equal(t, behavior.StageDerive, resolveErr.Stage)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "rules", evalErr.Behavior)
}

func TestCombineEvaluatesOverSortedSpecs(t *testing.T) {
	strongest := behavior.Define(Combine[int, int](nil, "specs[0] * 10"))
	count := behavior.Define(Combine[string, int](NewCELEvaluator(), "size(specs)"))

	store, err := behavior.Resolve([]behavior.Use{
		strongest.Use(1),
		strongest.Use(7, behavior.PriorityOverride),
		count.Use("a"),
		count.Use("b"),
	})
	require.NoError(t, err)

	value, ok := strongest.Get(store)
	require.True(t, ok)
	assert.Equal(t, 70, value)

	n, ok := count.Get(store)
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestCombineRejectsMismatchedResult(t *testing.T) {
	combine := Combine[int, string](nil, "len(specs)")
	_, err := combine([]int{1, 2})
	require.ErrorIs(t, err, ErrResultType)
}

func TestCheck(t *testing.T) {
	ok, err := Check(nil, Context{Vars: map[string]any{"n": 4}}, "n % 2 == 0")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Check(nil, Context{}, "1 + 1")
	require.ErrorIs(t, err, ErrResultType)
}
