package behavior

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvePlugins(t *testing.T) (*Store, *SetBehavior[string]) {
	t.Helper()
	tags := DefineSet(WithSetName[string]("tags"))
	plugins := DefineSet(
		WithSetName[string]("plugins"),
		WithSetDerive[string](func(spec string) ([]Use, error) {
			return []Use{tags.Use("plugin:" + spec)}, nil
		}),
	)
	store, err := Resolve([]Use{
		plugins.Use("a", PriorityFallback),
		plugins.Use("b", PriorityOverride),
		plugins.Use("c"),
	})
	require.NoError(t, err)
	return store, plugins
}

func TestTraceGolden(t *testing.T) {
	store, plugins := resolvePlugins(t)

	trace, ok := store.Trace(plugins)
	require.True(t, ok)
	payload, err := trace.ToJSON()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "plugins_trace", payload)
}

func TestTraceRoundTripsThroughJSON(t *testing.T) {
	store, plugins := resolvePlugins(t)
	trace, _ := store.Trace(plugins)

	payload, err := trace.ToJSON()
	require.NoError(t, err)
	decoded, err := TraceFromJSON(payload)
	require.NoError(t, err)

	assert.Equal(t, trace.Behavior, decoded.Behavior)
	assert.Equal(t, trace.SubBehaviors, decoded.SubBehaviors)
	require.Len(t, decoded.Contributions, 3)
	assert.Equal(t, "b", decoded.Contributions[0].Spec)

	_, err = TraceFromJSON([]byte("{"))
	assert.Error(t, err)
}

func TestStoreTraceIsACopy(t *testing.T) {
	store, plugins := resolvePlugins(t)

	trace, _ := store.Trace(plugins)
	trace.Contributions[0].Spec = "mutated"
	trace.SubBehaviors[0] = "mutated"

	again, _ := store.Trace(plugins)
	assert.Equal(t, "b", again.Contributions[0].Spec)
	assert.Equal(t, "tags", again.SubBehaviors[0])

	_, ok := store.Trace(DefineSet[int]())
	assert.False(t, ok)
}

func TestStoreTypesFollowEvaluationOrder(t *testing.T) {
	store, _ := resolvePlugins(t)
	assert.Equal(t, []string{"plugins", "tags"}, typeNames(store.Types()))
	assert.Equal(t, 2, store.Len())
	assert.NotEmpty(t, store.ID())
}
