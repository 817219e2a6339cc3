package rule

import "time"

// Context carries the inputs available to an expression.
type Context struct {
	// Vars are bound as top-level identifiers.
	Vars     map[string]any
	Args     map[string]any
	Metadata map[string]any
	Now      *time.Time
	// Behavior labels errors and log events.
	Behavior string
}

func (ctx Context) withDefaults() Context {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Vars == nil {
		ctx.Vars = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx Context) timestamp() time.Time {
	if ctx.Now == nil {
		return time.Now()
	}
	return *ctx.Now
}

func (ctx Context) label() string {
	if ctx.Behavior != "" {
		return ctx.Behavior
	}
	return "unknown"
}

// bindings returns the identifiers shared by every engine.
func (ctx Context) bindings() map[string]any {
	env := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	for key, value := range ctx.Vars {
		env[key] = value
	}
	return env
}
