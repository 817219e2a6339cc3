package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context identifies the behavior whose merged config is being decoded.
type Context struct {
	Behavior string
}

// PreHook can rewrite the merged map before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook can adjust or validate the decoded value.
type PostHook[T any] func(Context, *T) error

// CustomDecoder replaces JSON round-tripping when provided.
type CustomDecoder[T any] func(Context, map[string]any) (T, error)

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder turns merged config maps into typed values.
type Decoder[T any] struct {
	preHooks  []PreHook
	postHooks []PostHook[T]
	useNumber bool
	strict    bool
	custom    CustomDecoder[T]
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.postHooks = append(d.postHooks, hook)
		}
	}
}

// WithUseNumber decodes numbers into json.Number when the target is untyped.
func WithUseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.useNumber = true
	}
}

// WithStrict rejects keys that do not map to a field of T.
func WithStrict[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.strict = true
	}
}

// WithCustomDecoder replaces the default JSON decoding path.
func WithCustomDecoder[T any](decoder CustomDecoder[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.custom = decoder
	}
}

// NewDecoder builds a Decoder from opts.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into T. The payload map is never mutated; an empty
// or nil payload decodes to the zero value before post hooks run.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var zero T

	current := payload
	if current == nil {
		current = map[string]any{}
	}
	for _, hook := range d.preHooks {
		next, err := hook(ctx, clonePayload(current))
		if err != nil {
			return zero, fmt.Errorf("hydrate: pre-hook for %q failed: %w", ctx.Behavior, err)
		}
		if next != nil {
			current = next
		}
	}

	var result T
	if d.custom != nil {
		decoded, err := d.custom(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: custom decoder for %q failed: %w", ctx.Behavior, err)
		}
		result = decoded
	} else {
		buffer, err := json.Marshal(current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: marshal config for %q: %w", ctx.Behavior, err)
		}
		decoder := json.NewDecoder(bytes.NewReader(buffer))
		if d.useNumber {
			decoder.UseNumber()
		}
		if d.strict {
			decoder.DisallowUnknownFields()
		}
		if err := decoder.Decode(&result); err != nil {
			return zero, fmt.Errorf("hydrate: decode config for %q: %w", ctx.Behavior, err)
		}
	}

	for _, hook := range d.postHooks {
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("hydrate: post-hook for %q failed: %w", ctx.Behavior, err)
		}
	}
	return result, nil
}

// clonePayload copies the top level so hooks cannot mutate caller maps.
func clonePayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = value
	}
	return out
}
