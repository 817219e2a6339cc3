package behavior

import "github.com/goliatone/go-behavior/pkg/activity"

// Option configures a reduce-to-value behavior at definition time.
type Option[S, V any] func(*definition[S, V])

type definition[S, V any] struct {
	name       string
	derive     DeriveFunc[V]
	def        S
	hasDefault bool
}

// WithName sets the diagnostic name used in errors, logs and traces.
func WithName[S, V any](name string) Option[S, V] {
	return func(cfg *definition[S, V]) {
		cfg.name = name
	}
}

// WithDefault configures the spec contributed by Default.
func WithDefault[S, V any](spec S) Option[S, V] {
	return func(cfg *definition[S, V]) {
		cfg.def = spec
		cfg.hasDefault = true
	}
}

// WithDerive registers fn to run once on the combined value.
func WithDerive[S, V any](fn DeriveFunc[V]) Option[S, V] {
	return func(cfg *definition[S, V]) {
		cfg.derive = fn
	}
}

// SetOption configures a collect-as-set behavior at definition time.
type SetOption[S any] func(*setDefinition[S])

type setDefinition[S any] struct {
	name       string
	derive     DeriveFunc[S]
	def        S
	hasDefault bool
}

// WithSetName sets the diagnostic name of a set behavior.
func WithSetName[S any](name string) SetOption[S] {
	return func(cfg *setDefinition[S]) {
		cfg.name = name
	}
}

// WithSetDefault configures the spec contributed by Default.
func WithSetDefault[S any](spec S) SetOption[S] {
	return func(cfg *setDefinition[S]) {
		cfg.def = spec
		cfg.hasDefault = true
	}
}

// WithSetDerive registers fn to run once per contributed spec.
func WithSetDerive[S any](fn DeriveFunc[S]) SetOption[S] {
	return func(cfg *setDefinition[S]) {
		cfg.derive = fn
	}
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	graph         *Graph
	logger        ResolveLogger
	activityHooks activity.Hooks
	activityCfg   activity.Config
	maxAttempts   int
}

func applyResolverOptions(opts []ResolverOption) resolverConfig {
	cfg := resolverConfig{
		activityCfg: activity.Config{Enabled: true},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.graph == nil {
		cfg.graph = NewGraph()
	}
	if cfg.logger == nil {
		cfg.logger = noopResolveLogger{}
	}
	return cfg
}

// WithGraph shares an existing sub-behavior graph with the resolver, so
// several resolvers can build on the same discovered edges.
func WithGraph(graph *Graph) ResolverOption {
	return func(cfg *resolverConfig) {
		cfg.graph = graph
	}
}

// WithResolveLogger attaches a logger receiving resolution events.
func WithResolveLogger(logger ResolveLogger) ResolverOption {
	return func(cfg *resolverConfig) {
		if logger == nil {
			cfg.logger = noopResolveLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithActivityHooks attaches activity hooks notified after each resolution.
// Nil entries are dropped.
func WithActivityHooks(hooks activity.Hooks) ResolverOption {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *resolverConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides the activity emitter configuration.
func WithActivityConfig(config activity.Config) ResolverOption {
	return func(cfg *resolverConfig) {
		cfg.activityCfg = config
	}
}

// WithMaxAttempts bounds the number of resolution attempts. Zero, the
// default, leaves restarts bounded only by the size of the graph.
func WithMaxAttempts(n int) ResolverOption {
	return func(cfg *resolverConfig) {
		if n < 0 {
			n = 0
		}
		cfg.maxAttempts = n
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
