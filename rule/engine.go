package rule

// engineConfig holds what every expression engine is built from.
type engineConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

func newEngineConfig[O ~func(*engineConfig)](opts []O) engineConfig {
	cfg := engineConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// useRegistry snapshots registry so later registrations do not leak into a
// built engine.
func (cfg *engineConfig) useRegistry(registry *FunctionRegistry) {
	if registry != nil {
		cfg.registry = registry.Clone()
	}
}

// call is the call(name, args...) helper bound into every engine. It sees
// the functions scoped to the behavior being evaluated.
func (cfg engineConfig) call(behavior string) func(string, ...any) (any, error) {
	return func(name string, arguments ...any) (any, error) {
		return cfg.registry.CallFor(behavior, name, arguments...)
	}
}

// cachedProgram loads the program stored under key, building and storing it
// on a miss. Entries of another type count as misses.
func cachedProgram[P any](cache ProgramCache, key string, build func() (P, error)) (P, error) {
	if cache != nil {
		if cached, ok := cache.Get(key); ok {
			if program, ok := cached.(P); ok {
				return program, nil
			}
		}
	}
	program, err := build()
	if err != nil {
		return program, err
	}
	if cache != nil {
		cache.Set(key, program)
	}
	return program, nil
}

// JSEvaluatorOption configures the JS evaluator. Options are accepted with
// or without the js_eval build tag.
type JSEvaluatorOption func(*engineConfig)

// JSWithProgramCache applies a ProgramCache to the JS evaluator.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(cfg *engineConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS evaluator.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(cfg *engineConfig) {
		cfg.useRegistry(registry)
	}
}
