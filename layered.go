package behavior

import (
	"github.com/goliatone/go-behavior/internal/hydrate"
	"github.com/goliatone/go-behavior/layering"
)

// DefineLayered creates a behavior that overlays its specs strongest first:
// the highest-priority spec wins for every field it sets and weaker specs
// fill the rest. The resolved Trace records in Fields which contribution
// supplied each field.
func DefineLayered[T any](opts ...Option[T, T]) *Behavior[T, T] {
	b := Define(func(specs []T) (T, error) {
		return layering.MergeLayers(specs...), nil
	}, opts...)
	b.overlay = func(specs []T) (T, map[string]int, error) {
		overlay := layering.Merge(specs...)
		return overlay.Value, overlay.Sources, nil
	}
	return b
}

// ConfigOption configures a behavior created by DefineConfig.
type ConfigOption[T any] func(*configDefinition[T])

type configDefinition[T any] struct {
	merge    layering.MergeFuncs
	defaults map[string]any
	decoder  []hydrate.DecoderOption[T]
	behavior []Option[map[string]any, T]
}

// WithConfigMerge resolves conflicting keys with the given functions.
func WithConfigMerge[T any](merge layering.MergeFuncs) ConfigOption[T] {
	return func(cfg *configDefinition[T]) {
		cfg.merge = merge
	}
}

// WithConfigDefaults fills keys no spec provided.
func WithConfigDefaults[T any](defaults map[string]any) ConfigOption[T] {
	return func(cfg *configDefinition[T]) {
		cfg.defaults = defaults
	}
}

// WithConfigStrict rejects merged keys that do not map onto T.
func WithConfigStrict[T any]() ConfigOption[T] {
	return func(cfg *configDefinition[T]) {
		cfg.decoder = append(cfg.decoder, hydrate.WithStrict[T]())
	}
}

// WithConfigValidate runs fn on the decoded value; a failure aborts the
// resolution with a combine-stage ResolveError.
func WithConfigValidate[T any](fn func(*T) error) ConfigOption[T] {
	return func(cfg *configDefinition[T]) {
		if fn == nil {
			return
		}
		cfg.decoder = append(cfg.decoder, hydrate.WithPostHook[T](func(_ hydrate.Context, value *T) error {
			return fn(value)
		}))
	}
}

// WithConfigBehavior forwards definition options such as WithName or
// WithDerive to the underlying behavior.
func WithConfigBehavior[T any](opts ...Option[map[string]any, T]) ConfigOption[T] {
	return func(cfg *configDefinition[T]) {
		cfg.behavior = append(cfg.behavior, opts...)
	}
}

// DefineConfig creates a behavior whose specs are partial config maps.
// Specs are merged with layering.CombineConfigs and the result is decoded
// into T.
func DefineConfig[T any](opts ...ConfigOption[T]) *Behavior[map[string]any, T] {
	cfg := configDefinition[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	decoder := hydrate.NewDecoder(cfg.decoder...)

	var b *Behavior[map[string]any, T]
	b = Define(func(specs []map[string]any) (T, error) {
		merged, err := layering.CombineConfigs(specs, cfg.merge, cfg.defaults)
		if err != nil {
			var zero T
			return zero, err
		}
		return decoder.Decode(hydrate.Context{Behavior: b.Name()}, merged)
	}, cfg.behavior...)
	return b
}
